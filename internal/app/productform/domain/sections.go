package domain

// Section identifies one independently editable slice of a product.
// The set is closed: every snapshot and every edited copy carries all of them.
type Section string

const (
	SectionGeneral          Section = "general"
	SectionImage            Section = "image"
	SectionOffers           Section = "offers"
	SectionCheckoutSettings Section = "checkoutSettings"
	SectionUpsell           Section = "upsell"
	SectionAffiliate        Section = "affiliate"
)

var allSections = []Section{
	SectionGeneral,
	SectionImage,
	SectionOffers,
	SectionCheckoutSettings,
	SectionUpsell,
	SectionAffiliate,
}

// Sections returns every section in declaration order.
func Sections() []Section {
	out := make([]Section, len(allSections))
	copy(out, allSections)
	return out
}

func (s Section) Valid() bool {
	for _, known := range allSections {
		if s == known {
			return true
		}
	}
	return false
}

func (s Section) String() string { return string(s) }

// Tab returns the tab that renders the section.
func (s Section) Tab() TabKey {
	switch s {
	case SectionGeneral, SectionImage, SectionOffers:
		return TabGeneral
	case SectionCheckoutSettings:
		return TabCheckout
	case SectionUpsell:
		return TabUpsell
	case SectionAffiliate:
		return TabAffiliates
	default:
		return ""
	}
}
