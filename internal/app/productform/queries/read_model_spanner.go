package queries

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-form-service/internal/app/productform/dto"
	"github.com/murkotick/product-form-service/internal/app/productform/queries/get_product_aggregate"
)

// SpannerReadModel is an infrastructure adapter that satisfies contracts.ReadModel.
type SpannerReadModel struct {
	aggregateQ *get_product_aggregate.SpannerGetProductAggregateQuery
}

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		aggregateQ: get_product_aggregate.NewSpannerGetProductAggregateQuery(client),
	}
}

func (rm *SpannerReadModel) GetProductAggregate(ctx context.Context, productID string) (*dto.ProductAggregateDTO, error) {
	return rm.aggregateQ.GetProductAggregate(ctx, productID)
}
