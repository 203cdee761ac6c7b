package validation

import "github.com/murkotick/product-form-service/internal/app/productform/domain"

func Upsell(data domain.EditedFormData) domain.FieldErrors {
	u := data.Upsell
	errs := domain.FieldErrors{}
	if !u.HasCustomThankYouPage {
		return errs
	}
	if u.CustomPageURL == "" {
		errs.Add("upsell.custom_page_url", "is required when a custom thank-you page is enabled")
		return errs
	}
	checkVar(errs, "upsell.custom_page_url", u.CustomPageURL, "http_url")
	return errs
}
