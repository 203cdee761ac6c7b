package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
)

// Adapter applies plans against Spanner.
type Adapter struct {
	client *spanner.Client
	logger *zap.Logger
	tag    string
}

type Option func(*Adapter)

func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTransactionTag sets the Spanner transaction tag used for every commit.
func WithTransactionTag(tag string) Option {
	return func(a *Adapter) { a.tag = tag }
}

func NewAdapter(client *spanner.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, logger: zap.NewNop(), tag: "productform-save"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	start := time.Now()
	resp, err := a.client.ReadWriteTransactionWithOptions(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	}, spanner.TransactionOptions{TransactionTag: a.tag})
	if err != nil {
		a.logger.Warn("commit failed",
			zap.Int("mutations", plan.Len()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("committer: %w", err)
	}

	a.logger.Debug("commit applied",
		zap.Int("mutations", plan.Len()),
		zap.Time("commit_ts", resp.CommitTs),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
