package domain

import "maps"

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
)

// Gateway is a payment provider a checkout can route through.
type Gateway string

const (
	GatewayMercadoPago Gateway = "mercadopago"
	GatewayPushinPay   Gateway = "pushinpay"
	GatewayStripe      Gateway = "stripe"
	GatewayAsaas       Gateway = "asaas"
)

// RequiredFields are the buyer fields the checkout asks for.
type RequiredFields struct {
	Name  bool `json:"name"`
	Email bool `json:"email"`
	Phone bool `json:"phone"`
	CPF   bool `json:"cpf"`
}

type CheckoutSettings struct {
	RequiredFields       RequiredFields `json:"required_fields"`
	DefaultPaymentMethod PaymentMethod  `json:"default_payment_method" validate:"required,oneof=pix credit_card"`
	PixGateway           Gateway        `json:"pix_gateway" validate:"required,oneof=mercadopago pushinpay asaas stripe"`
	CreditCardGateway    Gateway        `json:"credit_card_gateway" validate:"required,oneof=mercadopago stripe asaas"`
}

// DefaultCheckoutSettings is used for products that never saved checkout settings.
func DefaultCheckoutSettings() CheckoutSettings {
	return CheckoutSettings{
		RequiredFields:       RequiredFields{Name: true, Email: true},
		DefaultPaymentMethod: PaymentPix,
		PixGateway:           GatewayMercadoPago,
		CreditCardGateway:    GatewayMercadoPago,
	}
}

type RequiredFieldsPatch struct {
	Name  *bool `json:"name,omitempty"`
	Email *bool `json:"email,omitempty"`
	Phone *bool `json:"phone,omitempty"`
	CPF   *bool `json:"cpf,omitempty"`
}

type CheckoutSettingsPatch struct {
	RequiredFields       *RequiredFieldsPatch `json:"required_fields,omitempty"`
	DefaultPaymentMethod *PaymentMethod       `json:"default_payment_method,omitempty"`
	PixGateway           *Gateway             `json:"pix_gateway,omitempty"`
	CreditCardGateway    *Gateway             `json:"credit_card_gateway,omitempty"`
}

func (c CheckoutSettings) Apply(p CheckoutSettingsPatch) CheckoutSettings {
	if rf := p.RequiredFields; rf != nil {
		if rf.Name != nil {
			c.RequiredFields.Name = *rf.Name
		}
		if rf.Email != nil {
			c.RequiredFields.Email = *rf.Email
		}
		if rf.Phone != nil {
			c.RequiredFields.Phone = *rf.Phone
		}
		if rf.CPF != nil {
			c.RequiredFields.CPF = *rf.CPF
		}
	}
	if p.DefaultPaymentMethod != nil {
		c.DefaultPaymentMethod = *p.DefaultPaymentMethod
	}
	if p.PixGateway != nil {
		c.PixGateway = *p.PixGateway
	}
	if p.CreditCardGateway != nil {
		c.CreditCardGateway = *p.CreditCardGateway
	}
	return c
}

// GatewayCredentials records which gateways the merchant has configured.
// It is loaded with the product and never edited through the form.
type GatewayCredentials map[Gateway]bool

func (g GatewayCredentials) Configured(gw Gateway) bool {
	return g[gw]
}

func (g GatewayCredentials) Clone() GatewayCredentials {
	if g == nil {
		return nil
	}
	return maps.Clone(g)
}
