package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/models/m_offer"
)

type OfferRepo struct{}

func NewOfferRepo() *OfferRepo {
	return &OfferRepo{}
}

// UpsertMuts writes every offer with its list position. Offers must already
// carry their persistent ids.
func (r *OfferRepo) UpsertMuts(productID string, offers []domain.Offer, now time.Time) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(offers))
	for i, o := range offers {
		muts = append(muts, m_offer.UpsertMutation(productID, o.ID, o.Name, o.Price.Rat(), o.IsDefault, int64(i), now.UTC()))
	}
	return muts
}

func (r *OfferRepo) DeleteMuts(productID string, offerIDs []string) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(offerIDs))
	for _, id := range offerIDs {
		muts = append(muts, m_offer.DeleteMutation(productID, id))
	}
	return muts
}
