package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/config"
	"github.com/murkotick/product-form-service/internal/pkg/ddl"
	"github.com/murkotick/product-form-service/internal/pkg/logger"
)

// Applies migrations/001_initial_schema.sql to a Cloud Spanner database
// (typically the emulator for local dev).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export PFS_SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("load config", zap.Error(err))
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		zap.L().Fatal("create logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg.Spanner.Database, log); err != nil {
		log.Error("migration failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(db string, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stmts, err := ddl.ReadFile(filepath.Join("migrations", "001_initial_schema.sql"))
	if err != nil {
		return err
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return err
	}
	defer admin.Close()

	if err := ddl.Apply(ctx, admin, db, stmts); err != nil {
		return err
	}
	log.Info("schema applied", zap.Int("statements", len(stmts)), zap.String("database", db))
	return nil
}
