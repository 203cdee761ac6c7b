package domain

import "github.com/shopspring/decimal"

// DeliveryType describes how the buyer receives the product.
type DeliveryType string

const (
	DeliveryStandard    DeliveryType = "standard"
	DeliveryMembersArea DeliveryType = "members_area"
	DeliveryExternal    DeliveryType = "external"
)

// General holds the basic product fields.
type General struct {
	Name             string          `json:"name" validate:"required,max=200"`
	Description      string          `json:"description" validate:"min=100,max=2000"`
	Price            decimal.Decimal `json:"price"`
	SupportName      string          `json:"support_name" validate:"max=120"`
	SupportEmail     string          `json:"support_email" validate:"omitempty,email"`
	DeliveryURL      string          `json:"delivery_url" validate:"omitempty,url"`
	ExternalDelivery bool            `json:"external_delivery"`
	DeliveryType     DeliveryType    `json:"delivery_type" validate:"omitempty,oneof=standard members_area external"`
}

// GeneralPatch is a partial update; nil fields are left untouched.
type GeneralPatch struct {
	Name             *string          `json:"name,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	SupportName      *string          `json:"support_name,omitempty"`
	SupportEmail     *string          `json:"support_email,omitempty"`
	DeliveryURL      *string          `json:"delivery_url,omitempty"`
	ExternalDelivery *bool            `json:"external_delivery,omitempty"`
	DeliveryType     *DeliveryType    `json:"delivery_type,omitempty"`
}

// Apply returns g with the non-nil fields of p merged in.
func (g General) Apply(p GeneralPatch) General {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Price != nil {
		g.Price = *p.Price
	}
	if p.SupportName != nil {
		g.SupportName = *p.SupportName
	}
	if p.SupportEmail != nil {
		g.SupportEmail = *p.SupportEmail
	}
	if p.DeliveryURL != nil {
		g.DeliveryURL = *p.DeliveryURL
	}
	if p.ExternalDelivery != nil {
		g.ExternalDelivery = *p.ExternalDelivery
	}
	if p.DeliveryType != nil {
		g.DeliveryType = *p.DeliveryType
	}
	return g
}
