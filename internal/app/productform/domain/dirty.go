package domain

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AuxiliaryMarkers are edit-side facts a structural diff cannot see:
// removing a temporary offer after adding it leaves the list equal to the
// snapshot, yet the user did touch it.
type AuxiliaryMarkers struct {
	DeletedOfferIDs     []string
	OffersModified      bool
	ImagePendingUpload  bool
	ImagePendingRemoval bool
}

// DirtyFlags reports which sections differ from the snapshot.
// It is always derived, never assigned.
type DirtyFlags struct {
	General          bool `json:"general"`
	Image            bool `json:"image"`
	Offers           bool `json:"offers"`
	CheckoutSettings bool `json:"checkout_settings"`
	Upsell           bool `json:"upsell"`
	Affiliate        bool `json:"affiliate"`
}

// Section returns the flag for s.
func (f DirtyFlags) Section(s Section) bool {
	switch s {
	case SectionGeneral:
		return f.General
	case SectionImage:
		return f.Image
	case SectionOffers:
		return f.Offers
	case SectionCheckoutSettings:
		return f.CheckoutSettings
	case SectionUpsell:
		return f.Upsell
	case SectionAffiliate:
		return f.Affiliate
	}
	return false
}

// DirtySections lists dirty sections in declaration order.
func (f DirtyFlags) DirtySections() []Section {
	var out []Section
	for _, s := range allSections {
		if f.Section(s) {
			out = append(out, s)
		}
	}
	return out
}

// AnyDirty is the OR of every section flag.
func AnyDirty(f DirtyFlags) bool {
	for _, s := range allSections {
		if f.Section(s) {
			return true
		}
	}
	return false
}

var (
	imageMarkers  = cmpopts.IgnoreFields(Image{}, "Upload", "PendingRemoval")
	offersMarkers = cmpopts.IgnoreFields(Offers{}, "DeletedIDs", "Modified")
)

func sectionEqual(x, y any, opts ...cmp.Option) bool {
	return cmp.Equal(x, y, append(opts, cmpopts.EquateEmpty())...)
}

// CalculateDirtyFlags compares every section of edited with server.
// Neither input is modified.
func CalculateDirtyFlags(server *ServerDataSnapshot, edited *EditedFormData, aux AuxiliaryMarkers) DirtyFlags {
	if server == nil || edited == nil {
		return DirtyFlags{}
	}

	return DirtyFlags{
		General: !sectionEqual(server.General, edited.General),
		Image: !sectionEqual(server.Image, edited.Image, imageMarkers) ||
			aux.ImagePendingUpload || aux.ImagePendingRemoval,
		Offers: !sectionEqual(server.Offers, edited.Offers, offersMarkers) ||
			len(aux.DeletedOfferIDs) > 0 || aux.OffersModified,
		CheckoutSettings: !sectionEqual(server.CheckoutSettings, edited.CheckoutSettings),
		Upsell:           !sectionEqual(server.Upsell, edited.Upsell),
		Affiliate:        !sectionEqual(server.Affiliate, edited.Affiliate),
	}
}
