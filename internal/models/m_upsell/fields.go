package m_upsell

const (
	TableName = "product_upsell_settings"

	ColProductID                         = "product_id"
	ColHasCustomThankYouPage             = "has_custom_thank_you_page"
	ColCustomPageURL                     = "custom_page_url"
	ColRedirectIgnoringOrderBumpFailures = "redirect_ignoring_order_bump_failures"
	ColUpdatedAt                         = "updated_at"
)
