package contracts

import (
	"context"

	"github.com/murkotick/product-form-service/internal/app/productform/dto"
)

// ReadModel fetches everything the form needs for one product.
// A missing product is reported as spanner.ErrRowNotFound or domain.ErrProductNotFound.
type ReadModel interface {
	GetProductAggregate(ctx context.Context, productID string) (*dto.ProductAggregateDTO, error)
}
