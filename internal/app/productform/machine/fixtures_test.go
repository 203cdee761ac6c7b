package machine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

func sampleSnapshot() domain.ServerDataSnapshot {
	return domain.ServerDataSnapshot{
		ProductID: "prod-1",
		General: domain.General{
			Name:        "Course",
			Description: strings.Repeat("a", 120),
			Price:       decimal.NewFromInt(97),
		},
		Image: domain.Image{URL: "https://cdn.example.com/p.png"},
		Offers: domain.Offers{Items: []domain.Offer{
			{ID: "offer-1", Name: "Full", Price: decimal.NewFromInt(97), IsDefault: true},
			{ID: "offer-2", Name: "Half", Price: decimal.NewFromInt(48)},
		}},
		CheckoutSettings: domain.DefaultCheckoutSettings(),
		Credentials:      domain.GatewayCredentials{domain.GatewayMercadoPago: true},
	}
}

// readyState drives the pure transition function to a loaded form.
func readyState() State {
	s := Transition(NewState(0), Load{ProductID: "prod-1"})
	return Transition(s, ReceiveData{Snapshot: sampleSnapshot()})
}

func ptr[T any](v T) *T { return &v }
