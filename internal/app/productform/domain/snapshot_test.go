package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditedFromSnapshot_NoAliasing(t *testing.T) {
	snap := sampleSnapshot()
	snap.Affiliate = &Affiliate{Enabled: true, DefaultRate: decimal.NewFromInt(10), CookieDuration: 30}

	edited := EditedFromSnapshot(snap)
	edited.Offers.Items[0].Name = "changed"
	edited.Affiliate.Enabled = false

	assert.Equal(t, "Full", snap.Offers.Items[0].Name)
	assert.True(t, snap.Affiliate.Enabled)
}

func TestNewSnapshot_DropsEditMarkers(t *testing.T) {
	snap := NewSnapshot(ServerDataSnapshot{
		Image:  Image{URL: "u", Upload: &ImageUpload{Data: []byte{1}}},
		Offers: Offers{Items: []Offer{{ID: "temp-1", Temporary: true}}, DeletedIDs: []string{"x"}, Modified: true},
	})

	assert.Nil(t, snap.Image.Upload)
	assert.False(t, snap.Offers.Modified)
	assert.Empty(t, snap.Offers.DeletedIDs)
	assert.False(t, snap.Offers.Items[0].Temporary)
}

func TestEditedFormData_Commit(t *testing.T) {
	snap := sampleSnapshot()
	edited := EditedFromSnapshot(snap)
	remove := true
	edited.Image = edited.Image.Apply(ImagePatch{PendingRemoval: &remove})
	edited.Offers, _ = edited.Offers.Remove("offer-1")

	next := edited.Commit(snap)

	assert.Equal(t, snap.ProductID, next.ProductID)
	assert.Equal(t, snap.Credentials, next.Credentials)
	assert.Empty(t, next.Image.URL)
	require.Len(t, next.Offers.Items, 1)
	assert.True(t, next.Offers.Items[0].IsDefault, "remaining offer becomes default")

	reseeded := EditedFromSnapshot(next)
	assert.False(t, AnyDirty(CalculateDirtyFlags(&next, &reseeded, reseeded.Markers())))
}

func TestOffers_ApplyRecordsDroppedPersistedOffers(t *testing.T) {
	snap := sampleSnapshot()
	temp := NewTemporaryOffer("Promo", decimal.NewFromInt(5))
	items := []Offer{snap.Offers.Items[0], temp}

	got := snap.Offers.Apply(OffersPatch{Items: &items})

	assert.Equal(t, []string{"offer-2"}, got.DeletedIDs)
	assert.True(t, got.Modified)
	assert.Len(t, got.Items, 2)
	assert.Len(t, snap.Offers.Items, 2, "receiver untouched")
}

func TestOffers_RemoveUnknown(t *testing.T) {
	snap := sampleSnapshot()
	_, ok := snap.Offers.Remove("missing")
	assert.False(t, ok)
}

func TestSection_Tab(t *testing.T) {
	assert.Equal(t, TabGeneral, SectionImage.Tab())
	assert.Equal(t, TabGeneral, SectionOffers.Tab())
	assert.Equal(t, TabCheckout, SectionCheckoutSettings.Tab())
	assert.Equal(t, TabAffiliates, SectionAffiliate.Tab())
	assert.Equal(t, -1, TabIndex("nope"))
	assert.Equal(t, 0, TabIndex(TabGeneral))
}
