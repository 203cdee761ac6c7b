package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func sampleSnapshot() ServerDataSnapshot {
	return NewSnapshot(ServerDataSnapshot{
		ProductID: "prod-1",
		General: General{
			Name:         "Course",
			Description:  strings.Repeat("d", 120),
			Price:        decimal.RequireFromString("97.00"),
			SupportEmail: "help@example.com",
			DeliveryType: DeliveryMembersArea,
		},
		Image: Image{URL: "https://cdn.example.com/p.png"},
		Offers: Offers{Items: []Offer{
			{ID: "offer-1", Name: "Full", Price: decimal.RequireFromString("97"), IsDefault: true},
			{ID: "offer-2", Name: "Half", Price: decimal.RequireFromString("48.5")},
		}},
		CheckoutSettings: DefaultCheckoutSettings(),
		Upsell:           Upsell{},
		Affiliate:        nil,
		Credentials:      GatewayCredentials{GatewayMercadoPago: true},
	})
}
