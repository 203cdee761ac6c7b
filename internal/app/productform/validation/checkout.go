package validation

import "github.com/murkotick/product-form-service/internal/app/productform/domain"

// CheckoutSettings requires name and email on every checkout and only
// accepts gateways the seller has configured.
func CheckoutSettings(data domain.EditedFormData) domain.FieldErrors {
	c := data.CheckoutSettings
	errs := checkStruct("checkout", c)

	if !c.RequiredFields.Name {
		errs.Add("checkout.required_fields.name", "name is always required")
	}
	if !c.RequiredFields.Email {
		errs.Add("checkout.required_fields.email", "email is always required")
	}

	if c.PixGateway == domain.GatewayStripe {
		errs.Add("checkout.pix_gateway", "stripe does not support pix")
	}
	if c.PixGateway != "" && !data.Credentials.Configured(c.PixGateway) {
		errs.Add("checkout.pix_gateway", "gateway credentials are not configured")
	}
	if c.CreditCardGateway != "" && !data.Credentials.Configured(c.CreditCardGateway) {
		errs.Add("checkout.credit_card_gateway", "gateway credentials are not configured")
	}
	return errs
}
