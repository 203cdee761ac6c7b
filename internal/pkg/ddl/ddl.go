// Package ddl reads Spanner schema files and applies them.
package ddl

import (
	"context"
	"fmt"
	"os"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
)

// Split breaks a schema file into statements. Full-line "--" comments are dropped.
func Split(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var out []string
	for _, p := range strings.Split(b.String(), ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// ReadFile reads and splits the schema file at path.
func ReadFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stmts := Split(string(b))
	if len(stmts) == 0 {
		return nil, fmt.Errorf("no DDL statements found in %s", path)
	}
	return stmts, nil
}

// Apply runs stmts against db and waits for the schema change to finish.
func Apply(ctx context.Context, admin *database.DatabaseAdminClient, db string, stmts []string) error {
	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("update database ddl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for ddl: %w", err)
	}
	return nil
}
