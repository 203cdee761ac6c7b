package m_affiliate

const (
	TableName = "product_affiliate_settings"

	ColProductID              = "product_id"
	ColEnabled                = "enabled"
	ColDefaultRate            = "default_rate"
	ColRequireApproval        = "require_approval"
	ColAttributionModel       = "attribution_model"
	ColCookieDurationDays     = "cookie_duration_days"
	ColSupportEmail           = "support_email"
	ColShowInMarketplace      = "show_in_marketplace"
	ColMarketplaceDescription = "marketplace_description"
	ColMarketplaceCategory    = "marketplace_category"
	ColCommissionOnOrderBump  = "commission_on_order_bump"
	ColCommissionOnUpsell     = "commission_on_upsell"
	ColUpdatedAt              = "updated_at"
)
