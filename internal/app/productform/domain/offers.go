package domain

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TempOfferPrefix marks ids generated locally for offers not persisted yet.
const TempOfferPrefix = "temp-"

// Offer is one purchasable price point of the product.
type Offer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name" validate:"required,max=120"`
	Price     decimal.Decimal `json:"price"`
	IsDefault bool            `json:"is_default"`
	Temporary bool            `json:"temporary"`
}

// NewTemporaryOffer creates an offer with a locally generated id.
func NewTemporaryOffer(name string, price decimal.Decimal) Offer {
	return Offer{
		ID:        TempOfferPrefix + uuid.NewString(),
		Name:      name,
		Price:     price,
		Temporary: true,
	}
}

// Offers is the offer list plus the edit markers that structural
// comparison alone cannot capture.
type Offers struct {
	Items      []Offer  `json:"items"`
	DeletedIDs []string `json:"deleted_ids,omitempty"`
	Modified   bool     `json:"modified"`
}

func (o Offers) Clone() Offers {
	return Offers{
		Items:      slices.Clone(o.Items),
		DeletedIDs: slices.Clone(o.DeletedIDs),
		Modified:   o.Modified,
	}
}

// Default returns the default offer, if any.
func (o Offers) Default() (Offer, bool) {
	for _, it := range o.Items {
		if it.IsDefault {
			return it, true
		}
	}
	return Offer{}, false
}

// Add appends offer and marks the list modified.
func (o Offers) Add(offer Offer) Offers {
	o = o.Clone()
	if len(o.Items) == 0 {
		offer.IsDefault = true
	}
	o.Items = append(o.Items, offer)
	o.Modified = true
	return o
}

// Remove drops the offer with id. Persisted ids are remembered in DeletedIDs
// so the save handler can delete them; temporary ones simply disappear.
func (o Offers) Remove(id string) (Offers, bool) {
	idx := slices.IndexFunc(o.Items, func(it Offer) bool { return it.ID == id })
	if idx < 0 {
		return o, false
	}
	o = o.Clone()
	removed := o.Items[idx]
	o.Items = slices.Delete(o.Items, idx, idx+1)
	if !removed.Temporary && !slices.Contains(o.DeletedIDs, removed.ID) {
		o.DeletedIDs = append(o.DeletedIDs, removed.ID)
	}
	if removed.IsDefault && len(o.Items) > 0 {
		o.Items[0].IsDefault = true
	}
	o.Modified = true
	return o, true
}

func (o Offers) committed() Offers {
	items := slices.Clone(o.Items)
	for i := range items {
		items[i].Temporary = false
	}
	return Offers{Items: items}
}

// OffersPatch replaces the whole offer list. Persisted offers missing from
// the new list are recorded as deleted.
type OffersPatch struct {
	Items *[]Offer `json:"items,omitempty"`
}

func (o Offers) Apply(p OffersPatch) Offers {
	o = o.Clone()
	if p.Items == nil {
		return o
	}
	next := slices.Clone(*p.Items)
	for _, prev := range o.Items {
		if prev.Temporary {
			continue
		}
		kept := slices.ContainsFunc(next, func(it Offer) bool { return it.ID == prev.ID })
		if !kept && !slices.Contains(o.DeletedIDs, prev.ID) {
			o.DeletedIDs = append(o.DeletedIDs, prev.ID)
		}
	}
	o.Items = next
	o.Modified = true
	return o
}
