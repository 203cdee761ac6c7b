package actors

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

const tracerName = "github.com/murkotick/product-form-service/actors"

// LoadActor fetches the product aggregate and normalizes it into a snapshot.
type LoadActor struct {
	readModel        contracts.ReadModel
	checkoutDefaults domain.CheckoutSettings
	logger           *zap.Logger
	tracer           trace.Tracer
}

type LoadOption func(*LoadActor)

func WithLoadLogger(l *zap.Logger) LoadOption {
	return func(a *LoadActor) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCheckoutDefaults overrides the settings used for products without a
// checkout settings row.
func WithCheckoutDefaults(c domain.CheckoutSettings) LoadOption {
	return func(a *LoadActor) { a.checkoutDefaults = c }
}

func NewLoadActor(readModel contracts.ReadModel, opts ...LoadOption) *LoadActor {
	a := &LoadActor{
		readModel:        readModel,
		checkoutDefaults: domain.DefaultCheckoutSettings(),
		logger:           zap.NewNop(),
		tracer:           otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("load_actor")
	return a
}

// Load implements machine.Loader. Every failure is a *domain.LoadError;
// a missing product unwraps to domain.ErrProductNotFound.
func (a *LoadActor) Load(ctx context.Context, productID string) (domain.ServerDataSnapshot, error) {
	ctx, span := a.tracer.Start(ctx, "productform.load", trace.WithAttributes(
		attribute.String("product_id", productID),
	))
	defer span.End()

	snap, err := a.load(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Warn("load failed", zap.String("product_id", productID), zap.Error(err))
		return domain.ServerDataSnapshot{}, &domain.LoadError{ProductID: productID, Err: err}
	}

	a.logger.Debug("product loaded",
		zap.String("product_id", productID),
		zap.Int("offers", len(snap.Offers.Items)),
		zap.Bool("has_affiliate", snap.Affiliate != nil),
	)
	return snap, nil
}

func (a *LoadActor) load(ctx context.Context, productID string) (domain.ServerDataSnapshot, error) {
	if productID == "" {
		return domain.ServerDataSnapshot{}, domain.ErrEmptyProductID
	}

	agg, err := a.readModel.GetProductAggregate(ctx, productID)
	if errors.Is(err, spanner.ErrRowNotFound) {
		return domain.ServerDataSnapshot{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.ServerDataSnapshot{}, err
	}
	return SnapshotFromAggregate(agg, a.checkoutDefaults)
}
