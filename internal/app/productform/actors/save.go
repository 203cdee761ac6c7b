package actors

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
)

// Observer is notified of every save attempt. Implementations must not block.
type Observer interface {
	ValidationFailed(productID string, res registry.ValidationResult)
	SaveFinished(productID string, res registry.SaveAllResult)
}

type nopObserver struct{}

func (nopObserver) ValidationFailed(string, registry.ValidationResult) {}
func (nopObserver) SaveFinished(string, registry.SaveAllResult)        {}

// SaveActor validates the captured form data and, when it is valid, runs
// every save handler in order.
type SaveActor struct {
	validators *registry.ValidationRegistry
	savers     *registry.SaveRegistry
	observer   Observer
	logger     *zap.Logger
	tracer     trace.Tracer
}

type SaveOption func(*SaveActor)

func WithSaveLogger(l *zap.Logger) SaveOption {
	return func(a *SaveActor) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithObserver(o Observer) SaveOption {
	return func(a *SaveActor) {
		if o != nil {
			a.observer = o
		}
	}
}

func NewSaveActor(validators *registry.ValidationRegistry, savers *registry.SaveRegistry, opts ...SaveOption) *SaveActor {
	a := &SaveActor{
		validators: validators,
		savers:     savers,
		observer:   nopObserver{},
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("save_actor")
	return a
}

// Save implements machine.Saver. data is never modified: handlers work on
// a copy, which is returned as the committed data on success.
func (a *SaveActor) Save(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error) {
	runID := uuid.NewString()
	ctx, span := a.tracer.Start(ctx, "productform.save_all", trace.WithAttributes(
		attribute.String("product_id", productID),
		attribute.String("save_run_id", runID),
	))
	defer span.End()

	log := a.logger.With(zap.String("product_id", productID), zap.String("save_run_id", runID))

	// Validation runs before any handler; a failure persists nothing.
	vres := a.validators.RunAll(data)
	if !vres.Valid() {
		a.observer.ValidationFailed(productID, vres)
		log.Info("validation failed", zap.String("first_error_tab", string(vres.FirstErrorTab)))
		span.SetStatus(codes.Error, "validation failed")
		return data, vres.Err()
	}

	work := data.Clone()
	req := &registry.SaveRequest{ProductID: productID, RunID: runID, Data: &work}
	res := a.savers.RunAll(ctx, req)
	a.observer.SaveFinished(productID, res)

	if res.Failed != nil {
		log.Warn("save failed",
			zap.String("tab", string(res.Failed.TabKey)),
			zap.Int("order", res.Failed.Order),
			zap.Error(res.Failed.Err),
		)
		span.RecordError(res.Failed)
		span.SetStatus(codes.Error, res.Failed.Error())
		return data, res.Failed
	}

	log.Info("save completed", zap.Int("handlers", len(res.Runs)))
	return work, nil
}
