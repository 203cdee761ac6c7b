package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/models/m_affiliate"
	"github.com/murkotick/product-form-service/internal/models/m_checkout_settings"
	"github.com/murkotick/product-form-service/internal/models/m_product"
	"github.com/murkotick/product-form-service/internal/models/m_upsell"
)

// SettingsRepo builds InsertOrUpdate mutations for the settings tables.
type SettingsRepo struct{}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

func buildCheckoutValues(productID string, c domain.CheckoutSettings, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		m_checkout_settings.ColProductID:            productID,
		m_checkout_settings.ColRequireName:          c.RequiredFields.Name,
		m_checkout_settings.ColRequireEmail:         c.RequiredFields.Email,
		m_checkout_settings.ColRequirePhone:         c.RequiredFields.Phone,
		m_checkout_settings.ColRequireCPF:           c.RequiredFields.CPF,
		m_checkout_settings.ColDefaultPaymentMethod: string(c.DefaultPaymentMethod),
		m_checkout_settings.ColPixGateway:           string(c.PixGateway),
		m_checkout_settings.ColCreditCardGateway:    string(c.CreditCardGateway),
		m_checkout_settings.ColUpdatedAt:            now.UTC(),
	}
}

func buildUpsellValues(productID string, u domain.Upsell, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		m_upsell.ColProductID:                         productID,
		m_upsell.ColHasCustomThankYouPage:             u.HasCustomThankYouPage,
		m_upsell.ColCustomPageURL:                     m_product.NullableString(u.CustomPageURL),
		m_upsell.ColRedirectIgnoringOrderBumpFailures: u.RedirectIgnoringOrderBumpFailures,
		m_upsell.ColUpdatedAt:                         now.UTC(),
	}
}

func buildAffiliateValues(productID string, a domain.Affiliate, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		m_affiliate.ColProductID:              productID,
		m_affiliate.ColEnabled:                a.Enabled,
		m_affiliate.ColDefaultRate:            a.DefaultRate.Rat(),
		m_affiliate.ColRequireApproval:        a.RequireApproval,
		m_affiliate.ColAttributionModel:       string(a.AttributionModel),
		m_affiliate.ColCookieDurationDays:     int64(a.CookieDuration),
		m_affiliate.ColSupportEmail:           m_product.NullableString(a.SupportEmail),
		m_affiliate.ColShowInMarketplace:      a.ShowInMarketplace,
		m_affiliate.ColMarketplaceDescription: m_product.NullableString(a.MarketplaceDescription),
		m_affiliate.ColMarketplaceCategory:    m_product.NullableString(a.MarketplaceCategory),
		m_affiliate.ColCommissionOnOrderBump:  a.CommissionOnOrderBump,
		m_affiliate.ColCommissionOnUpsell:     a.CommissionOnUpsell,
		m_affiliate.ColUpdatedAt:              now.UTC(),
	}
}

func (r *SettingsRepo) UpsertCheckoutMut(productID string, c domain.CheckoutSettings, now time.Time) *spanner.Mutation {
	return m_checkout_settings.UpsertMutation(buildCheckoutValues(productID, c, now))
}

func (r *SettingsRepo) UpsertUpsellMut(productID string, u domain.Upsell, now time.Time) *spanner.Mutation {
	return m_upsell.UpsertMutation(buildUpsellValues(productID, u, now))
}

func (r *SettingsRepo) UpsertAffiliateMut(productID string, a domain.Affiliate, now time.Time) *spanner.Mutation {
	return m_affiliate.UpsertMutation(buildAffiliateValues(productID, a, now))
}
