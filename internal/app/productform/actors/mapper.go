package actors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/dto"
)

// SnapshotFromAggregate converts the read model into a clean snapshot.
// Missing checkout settings fall back to checkoutDefaults; a missing upsell
// row is the zero Upsell; a missing affiliate row stays nil.
func SnapshotFromAggregate(agg *dto.ProductAggregateDTO, checkoutDefaults domain.CheckoutSettings) (domain.ServerDataSnapshot, error) {
	if agg == nil {
		return domain.ServerDataSnapshot{}, domain.ErrProductNotFound
	}
	p := agg.Product

	price, err := parseDecimal(p.Price)
	if err != nil {
		return domain.ServerDataSnapshot{}, fmt.Errorf("product price: %w", err)
	}

	snap := domain.ServerDataSnapshot{
		ProductID: p.ProductID,
		General: domain.General{
			Name:             p.Name,
			Description:      deref(p.Description),
			Price:            price,
			SupportName:      deref(p.SupportName),
			SupportEmail:     deref(p.SupportEmail),
			DeliveryURL:      deref(p.DeliveryURL),
			ExternalDelivery: p.ExternalDelivery,
			DeliveryType:     domain.DeliveryType(deref(p.DeliveryType)),
		},
		Image:            domain.Image{URL: deref(p.ImageURL)},
		CheckoutSettings: checkoutDefaults,
	}

	for _, o := range agg.Offers {
		op, err := parseDecimal(o.Price)
		if err != nil {
			return domain.ServerDataSnapshot{}, fmt.Errorf("offer %s price: %w", o.OfferID, err)
		}
		snap.Offers.Items = append(snap.Offers.Items, domain.Offer{
			ID:        o.OfferID,
			Name:      o.Name,
			Price:     op,
			IsDefault: o.IsDefault,
		})
	}

	if c := agg.Checkout; c != nil {
		snap.CheckoutSettings = domain.CheckoutSettings{
			RequiredFields: domain.RequiredFields{
				Name:  c.RequireName,
				Email: c.RequireEmail,
				Phone: c.RequirePhone,
				CPF:   c.RequireCPF,
			},
			DefaultPaymentMethod: domain.PaymentMethod(c.DefaultPaymentMethod),
			PixGateway:           domain.Gateway(c.PixGateway),
			CreditCardGateway:    domain.Gateway(c.CreditCardGateway),
		}
	}

	if u := agg.Upsell; u != nil {
		snap.Upsell = domain.Upsell{
			HasCustomThankYouPage:             u.HasCustomThankYouPage,
			CustomPageURL:                     deref(u.CustomPageURL),
			RedirectIgnoringOrderBumpFailures: u.RedirectIgnoringOrderBumpFailures,
		}
	}

	if a := agg.Affiliate; a != nil {
		rate, err := parseDecimal(a.DefaultRate)
		if err != nil {
			return domain.ServerDataSnapshot{}, fmt.Errorf("affiliate rate: %w", err)
		}
		snap.Affiliate = &domain.Affiliate{
			Enabled:                a.Enabled,
			DefaultRate:            rate,
			RequireApproval:        a.RequireApproval,
			AttributionModel:       domain.AttributionModel(a.AttributionModel),
			CookieDuration:         int(a.CookieDurationDays),
			SupportEmail:           deref(a.SupportEmail),
			ShowInMarketplace:      a.ShowInMarketplace,
			MarketplaceDescription: deref(a.MarketplaceDescription),
			MarketplaceCategory:    deref(a.MarketplaceCategory),
			CommissionOnOrderBump:  a.CommissionOnOrderBump,
			CommissionOnUpsell:     a.CommissionOnUpsell,
		}
	}

	if len(agg.Credentials) > 0 {
		snap.Credentials = make(domain.GatewayCredentials, len(agg.Credentials))
		for _, c := range agg.Credentials {
			snap.Credentials[domain.Gateway(c.Gateway)] = c.Configured
		}
	}

	return domain.NewSnapshot(snap), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
