package domain

import "github.com/shopspring/decimal"

type AttributionModel string

const (
	AttributionFirstClick AttributionModel = "first_click"
	AttributionLastClick  AttributionModel = "last_click"
)

// Affiliate holds the affiliate program and marketplace settings.
// A product without a program has a nil *Affiliate.
type Affiliate struct {
	Enabled                bool             `json:"enabled"`
	DefaultRate            decimal.Decimal  `json:"default_rate"`
	RequireApproval        bool             `json:"require_approval"`
	AttributionModel       AttributionModel `json:"attribution_model" validate:"required,oneof=first_click last_click"`
	CookieDuration         int              `json:"cookie_duration" validate:"min=1,max=365"`
	SupportEmail           string           `json:"support_email" validate:"omitempty,email"`
	ShowInMarketplace      bool             `json:"show_in_marketplace"`
	MarketplaceDescription string           `json:"marketplace_description"`
	MarketplaceCategory    string           `json:"marketplace_category"`
	CommissionOnOrderBump  bool             `json:"commission_on_order_bump"`
	CommissionOnUpsell     bool             `json:"commission_on_upsell"`
}

// DefaultAffiliate is the starting point when a product has no program yet.
func DefaultAffiliate() Affiliate {
	return Affiliate{
		DefaultRate:      decimal.NewFromInt(50),
		AttributionModel: AttributionLastClick,
		CookieDuration:   30,
	}
}

func (a *Affiliate) Clone() *Affiliate {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

type AffiliatePatch struct {
	Enabled                *bool             `json:"enabled,omitempty"`
	DefaultRate            *decimal.Decimal  `json:"default_rate,omitempty"`
	RequireApproval        *bool             `json:"require_approval,omitempty"`
	AttributionModel       *AttributionModel `json:"attribution_model,omitempty"`
	CookieDuration         *int              `json:"cookie_duration,omitempty"`
	SupportEmail           *string           `json:"support_email,omitempty"`
	ShowInMarketplace      *bool             `json:"show_in_marketplace,omitempty"`
	MarketplaceDescription *string           `json:"marketplace_description,omitempty"`
	MarketplaceCategory    *string           `json:"marketplace_category,omitempty"`
	CommissionOnOrderBump  *bool             `json:"commission_on_order_bump,omitempty"`
	CommissionOnUpsell     *bool             `json:"commission_on_upsell,omitempty"`
}

// Apply merges p into a copy of a. A nil receiver starts from DefaultAffiliate.
func (a *Affiliate) Apply(p AffiliatePatch) *Affiliate {
	var out Affiliate
	if a != nil {
		out = *a
	} else {
		out = DefaultAffiliate()
	}
	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	if p.DefaultRate != nil {
		out.DefaultRate = *p.DefaultRate
	}
	if p.RequireApproval != nil {
		out.RequireApproval = *p.RequireApproval
	}
	if p.AttributionModel != nil {
		out.AttributionModel = *p.AttributionModel
	}
	if p.CookieDuration != nil {
		out.CookieDuration = *p.CookieDuration
	}
	if p.SupportEmail != nil {
		out.SupportEmail = *p.SupportEmail
	}
	if p.ShowInMarketplace != nil {
		out.ShowInMarketplace = *p.ShowInMarketplace
	}
	if p.MarketplaceDescription != nil {
		out.MarketplaceDescription = *p.MarketplaceDescription
	}
	if p.MarketplaceCategory != nil {
		out.MarketplaceCategory = *p.MarketplaceCategory
	}
	if p.CommissionOnOrderBump != nil {
		out.CommissionOnOrderBump = *p.CommissionOnOrderBump
	}
	if p.CommissionOnUpsell != nil {
		out.CommissionOnUpsell = *p.CommissionOnUpsell
	}
	return &out
}
