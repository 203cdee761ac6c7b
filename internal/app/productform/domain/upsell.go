package domain

type Upsell struct {
	HasCustomThankYouPage             bool   `json:"has_custom_thank_you_page"`
	CustomPageURL                     string `json:"custom_page_url" validate:"omitempty,url"`
	RedirectIgnoringOrderBumpFailures bool   `json:"redirect_ignoring_order_bump_failures"`
}

type UpsellPatch struct {
	HasCustomThankYouPage             *bool   `json:"has_custom_thank_you_page,omitempty"`
	CustomPageURL                     *string `json:"custom_page_url,omitempty"`
	RedirectIgnoringOrderBumpFailures *bool   `json:"redirect_ignoring_order_bump_failures,omitempty"`
}

func (u Upsell) Apply(p UpsellPatch) Upsell {
	if p.HasCustomThankYouPage != nil {
		u.HasCustomThankYouPage = *p.HasCustomThankYouPage
	}
	if p.CustomPageURL != nil {
		u.CustomPageURL = *p.CustomPageURL
	}
	if p.RedirectIgnoringOrderBumpFailures != nil {
		u.RedirectIgnoringOrderBumpFailures = *p.RedirectIgnoringOrderBumpFailures
	}
	return u
}
