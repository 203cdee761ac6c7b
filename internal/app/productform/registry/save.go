package registry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// SaveRequest is shared by every handler of one run. Data is the run's
// working copy: a handler may record server-assigned values on it (ids,
// urls) for later handlers and for the committed snapshot.
type SaveRequest struct {
	ProductID string
	RunID     string
	Data      *domain.EditedFormData
}

// SaveFunc persists the sections owned by one tab.
//
// A run can be retried after a partial failure, and every handler runs
// again, so implementations must be idempotent.
type SaveFunc func(ctx context.Context, req *SaveRequest) error

// HandlerRun records one executed save handler.
type HandlerRun struct {
	HandlerInfo
	Duration time.Duration
	Err      error
}

// SaveAllResult reports which handlers ran and which one, if any, stopped the run.
type SaveAllResult struct {
	Runs   []HandlerRun
	Failed *domain.SaveError
}

func (r SaveAllResult) Err() error {
	if r.Failed == nil {
		return nil
	}
	return r.Failed
}

// Executed lists the tabs whose handler ran, in run order.
func (r SaveAllResult) Executed() []domain.TabKey {
	out := make([]domain.TabKey, len(r.Runs))
	for i, run := range r.Runs {
		out[i] = run.Tab
	}
	return out
}

type SaveRegistry struct {
	set    *ordered[SaveFunc]
	logger *zap.Logger
	tracer trace.Tracer
}

func NewSaveRegistry(logger *zap.Logger) *SaveRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveRegistry{
		set:    newOrdered[SaveFunc](),
		logger: logger.Named("save_registry"),
		tracer: otel.Tracer("github.com/murkotick/product-form-service/registry"),
	}
}

// Register adds or replaces the save handler of tab.
func (r *SaveRegistry) Register(tab domain.TabKey, order int, fn SaveFunc, opts ...Option) (func(), error) {
	unregister, err := r.set.register(tab, order, fn, fn == nil, opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("save handler registered", zap.String("tab", string(tab)), zap.Int("order", order))
	return unregister, nil
}

func (r *SaveRegistry) Unregister(tab domain.TabKey) bool { return r.set.unregister(tab) }

func (r *SaveRegistry) Len() int { return r.set.len() }

func (r *SaveRegistry) Handlers() []HandlerInfo { return r.set.handlers() }

// RunAll executes handlers one at a time in ascending order and stops at the
// first failure. Writes made by earlier handlers are not rolled back.
func (r *SaveRegistry) RunAll(ctx context.Context, req *SaveRequest) SaveAllResult {
	var res SaveAllResult

	for _, e := range r.set.sorted() {
		if err := ctx.Err(); err != nil {
			res.Failed = &domain.SaveError{TabKey: e.info.Tab, Order: e.info.Order, Err: err}
			return res
		}

		start := time.Now()
		err := r.runOne(ctx, e, req)
		run := HandlerRun{HandlerInfo: e.info, Duration: time.Since(start), Err: err}
		res.Runs = append(res.Runs, run)

		if err != nil {
			r.logger.Warn("save handler failed",
				zap.String("tab", string(e.info.Tab)),
				zap.Int("order", e.info.Order),
				zap.Duration("duration", run.Duration),
				zap.Error(err),
			)
			res.Failed = &domain.SaveError{TabKey: e.info.Tab, Order: e.info.Order, Err: err}
			return res
		}
		r.logger.Debug("save handler finished",
			zap.String("tab", string(e.info.Tab)),
			zap.Duration("duration", run.Duration),
		)
	}
	return res
}

func (r *SaveRegistry) runOne(ctx context.Context, e entry[SaveFunc], req *SaveRequest) (err error) {
	ctx, span := r.tracer.Start(ctx, "productform.save."+e.info.Label,
		trace.WithAttributes(
			attribute.String("productform.tab", string(e.info.Tab)),
			attribute.Int("productform.order", e.info.Order),
			attribute.String("productform.product_id", req.ProductID),
		))
	defer span.End()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("save handler panicked",
				zap.String("tab", string(e.info.Tab)),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("%w: %v", domain.ErrHandlerPanicked, rec)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	return e.fn(ctx, req)
}
