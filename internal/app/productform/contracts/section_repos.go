package contracts

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// ProductRepo builds mutations for the products row.
type ProductRepo interface {
	// UpdateGeneralMut writes the general fields and the image reference.
	UpdateGeneralMut(productID string, g domain.General, imageURL string, now time.Time) *spanner.Mutation
}

// OfferRepo builds mutations for product offers.
type OfferRepo interface {
	UpsertMuts(productID string, offers []domain.Offer, now time.Time) []*spanner.Mutation
	DeleteMuts(productID string, offerIDs []string) []*spanner.Mutation
}

// SettingsRepo builds upserts for the per-product settings tables.
type SettingsRepo interface {
	UpsertCheckoutMut(productID string, c domain.CheckoutSettings, now time.Time) *spanner.Mutation
	UpsertUpsellMut(productID string, u domain.Upsell, now time.Time) *spanner.Mutation
	UpsertAffiliateMut(productID string, a domain.Affiliate, now time.Time) *spanner.Mutation
}
