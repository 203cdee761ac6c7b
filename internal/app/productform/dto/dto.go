package dto

// ProductDTO is the products row as read by the form.
// NUMERIC columns are carried as decimal strings.
type ProductDTO struct {
	ProductID        string
	SellerID         string
	Name             string
	Description      *string
	Price            string
	SupportName      *string
	SupportEmail     *string
	DeliveryURL      *string
	ExternalDelivery bool
	DeliveryType     *string
	ImageURL         *string
	UpdatedAt        *string
}

type OfferDTO struct {
	OfferID   string
	Name      string
	Price     string
	IsDefault bool
	Position  int64
}

type CheckoutSettingsDTO struct {
	RequireName          bool
	RequireEmail         bool
	RequirePhone         bool
	RequireCPF           bool
	DefaultPaymentMethod string
	PixGateway           string
	CreditCardGateway    string
}

type UpsellDTO struct {
	HasCustomThankYouPage             bool
	CustomPageURL                     *string
	RedirectIgnoringOrderBumpFailures bool
}

type AffiliateDTO struct {
	Enabled                bool
	DefaultRate            string
	RequireApproval        bool
	AttributionModel       string
	CookieDurationDays     int64
	SupportEmail           *string
	ShowInMarketplace      bool
	MarketplaceDescription *string
	MarketplaceCategory    *string
	CommissionOnOrderBump  bool
	CommissionOnUpsell     bool
}

type GatewayCredentialDTO struct {
	Gateway    string
	Configured bool
}

// ProductAggregateDTO bundles every section of one product. Settings rows
// that were never written are nil.
type ProductAggregateDTO struct {
	Product     ProductDTO
	Offers      []OfferDTO
	Checkout    *CheckoutSettingsDTO
	Upsell      *UpsellDTO
	Affiliate   *AffiliateDTO
	Credentials []GatewayCredentialDTO
}
