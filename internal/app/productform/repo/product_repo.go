package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/models/m_product"
)

// ProductRepo is the Spanner implementation of contracts.ProductRepo.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildGeneralValues is unexported so tests can inspect the map without
// relying on spanner.Mutation internals.
func buildGeneralValues(g domain.General, imageURL string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		m_product.ColName:             g.Name,
		m_product.ColDescription:      m_product.NullableString(g.Description),
		m_product.ColPrice:            g.Price.Rat(),
		m_product.ColSupportName:      m_product.NullableString(g.SupportName),
		m_product.ColSupportEmail:     m_product.NullableString(g.SupportEmail),
		m_product.ColDeliveryURL:      m_product.NullableString(g.DeliveryURL),
		m_product.ColExternalDelivery: g.ExternalDelivery,
		m_product.ColDeliveryType:     m_product.NullableString(string(g.DeliveryType)),
		m_product.ColImageURL:         m_product.NullableString(imageURL),
		m_product.ColUpdatedAt:        now.UTC(),
	}
}

// UpdateGeneralMut overwrites every form-owned column of the products row.
// Writing the full set keeps a replayed save idempotent.
func (r *ProductRepo) UpdateGeneralMut(productID string, g domain.General, imageURL string, now time.Time) *spanner.Mutation {
	if productID == "" {
		return nil
	}
	return m_product.UpdateMutation(productID, buildGeneralValues(g, imageURL, now))
}
