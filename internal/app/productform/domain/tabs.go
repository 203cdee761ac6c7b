package domain

// TabKey identifies a UI tab; the unit of error navigation.
type TabKey string

const (
	TabGeneral     TabKey = "general"
	TabCheckout    TabKey = "checkout"
	TabOrderBumps  TabKey = "order-bumps"
	TabUpsell      TabKey = "upsell"
	TabCoupons     TabKey = "coupons"
	TabAffiliates  TabKey = "affiliates"
	TabMembersArea TabKey = "members-area"
	TabLinks       TabKey = "links"
)

// Handler orders used by the built-in validation and save handlers.
// Gaps leave room for sections added later.
const (
	OrderGeneral          = 10
	OrderCheckoutSettings = 20
	OrderUpsell           = 30
	OrderAffiliate        = 40
)

// tabOrder is the left-to-right order tabs are rendered in.
var tabOrder = []TabKey{
	TabGeneral,
	TabCheckout,
	TabOrderBumps,
	TabUpsell,
	TabCoupons,
	TabAffiliates,
	TabMembersArea,
	TabLinks,
}

// TabOrder returns a copy of the fixed tab order.
func TabOrder() []TabKey {
	out := make([]TabKey, len(tabOrder))
	copy(out, tabOrder)
	return out
}

// TabIndex returns the position of t in TabOrder, or -1 for an unknown tab.
func TabIndex(t TabKey) int {
	for i, k := range tabOrder {
		if k == t {
			return i
		}
	}
	return -1
}

func (t TabKey) Valid() bool { return TabIndex(t) >= 0 }

func (t TabKey) String() string { return string(t) }
