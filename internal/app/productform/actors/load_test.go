package actors

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/dto"
	"github.com/murkotick/product-form-service/internal/app/productform/machine"
)

var (
	_ machine.Loader = (*LoadActor)(nil)
	_ machine.Saver  = (*SaveActor)(nil)
)

type mockReadModel struct {
	mock.Mock
}

func (m *mockReadModel) GetProductAggregate(ctx context.Context, productID string) (*dto.ProductAggregateDTO, error) {
	args := m.Called(ctx, productID)
	agg, _ := args.Get(0).(*dto.ProductAggregateDTO)
	return agg, args.Error(1)
}

func strPtr(s string) *string { return &s }

func fullAggregate() *dto.ProductAggregateDTO {
	return &dto.ProductAggregateDTO{
		Product: dto.ProductDTO{
			ProductID:    "p1",
			SellerID:     "s1",
			Name:         "Course",
			Description:  strPtr("long description"),
			Price:        "97.50",
			SupportEmail: strPtr("help@example.com"),
			DeliveryType: strPtr("members_area"),
			ImageURL:     strPtr("https://cdn.example.com/p1.png"),
		},
		Offers: []dto.OfferDTO{
			{OfferID: "o1", Name: "Full", Price: "97.5", IsDefault: true},
			{OfferID: "o2", Name: "Half", Price: "48.75", Position: 1},
		},
		Checkout: &dto.CheckoutSettingsDTO{
			RequireName: true, RequireEmail: true, RequireCPF: true,
			DefaultPaymentMethod: "credit_card", PixGateway: "pushinpay", CreditCardGateway: "stripe",
		},
		Upsell: &dto.UpsellDTO{HasCustomThankYouPage: true, CustomPageURL: strPtr("https://example.com/ty")},
		Affiliate: &dto.AffiliateDTO{
			Enabled: true, DefaultRate: "40", AttributionModel: "first_click", CookieDurationDays: 60,
		},
		Credentials: []dto.GatewayCredentialDTO{{Gateway: "stripe", Configured: true}, {Gateway: "pushinpay", Configured: false}},
	}
}

func TestSnapshotFromAggregate_Full(t *testing.T) {
	snap, err := SnapshotFromAggregate(fullAggregate(), domain.DefaultCheckoutSettings())
	require.NoError(t, err)

	assert.Equal(t, "p1", snap.ProductID)
	assert.Equal(t, "Course", snap.General.Name)
	assert.True(t, snap.General.Price.Equal(decimal.RequireFromString("97.5")))
	assert.Equal(t, domain.DeliveryMembersArea, snap.General.DeliveryType)
	assert.Equal(t, "https://cdn.example.com/p1.png", snap.Image.URL)
	require.Len(t, snap.Offers.Items, 2)
	assert.True(t, snap.Offers.Items[0].IsDefault)
	assert.Equal(t, domain.PaymentCreditCard, snap.CheckoutSettings.DefaultPaymentMethod)
	assert.True(t, snap.CheckoutSettings.RequiredFields.CPF)
	assert.Equal(t, "https://example.com/ty", snap.Upsell.CustomPageURL)
	require.NotNil(t, snap.Affiliate)
	assert.Equal(t, 60, snap.Affiliate.CookieDuration)
	assert.True(t, snap.Credentials.Configured(domain.GatewayStripe))
	assert.False(t, snap.Credentials.Configured(domain.GatewayPushinPay))
}

func TestSnapshotFromAggregate_MissingRowsUseDefaults(t *testing.T) {
	agg := &dto.ProductAggregateDTO{Product: dto.ProductDTO{ProductID: "p1", Name: "Bare", Price: "10"}}
	defaults := domain.DefaultCheckoutSettings()
	defaults.CreditCardGateway = domain.GatewayAsaas

	snap, err := SnapshotFromAggregate(agg, defaults)
	require.NoError(t, err)

	assert.Equal(t, defaults, snap.CheckoutSettings)
	assert.Equal(t, domain.Upsell{}, snap.Upsell)
	assert.Nil(t, snap.Affiliate)
	assert.Empty(t, snap.Offers.Items)
	assert.Nil(t, snap.Credentials)
}

func TestSnapshotFromAggregate_BadNumeric(t *testing.T) {
	agg := fullAggregate()
	agg.Offers[1].Price = "not-a-number"
	_, err := SnapshotFromAggregate(agg, domain.DefaultCheckoutSettings())
	assert.ErrorContains(t, err, "offer o2 price")

	_, err = SnapshotFromAggregate(nil, domain.DefaultCheckoutSettings())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLoadActor_Load(t *testing.T) {
	rm := &mockReadModel{}
	rm.On("GetProductAggregate", mock.Anything, "p1").Return(fullAggregate(), nil)

	snap, err := NewLoadActor(rm).Load(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Course", snap.General.Name)
	rm.AssertExpectations(t)
}

func TestLoadActor_Errors(t *testing.T) {
	boom := errors.New("spanner unavailable")
	tests := []struct {
		name      string
		productID string
		repoErr   error
		want      error
	}{
		{name: "not found", productID: "missing", repoErr: spanner.ErrRowNotFound, want: domain.ErrProductNotFound},
		{name: "wrapped not found", productID: "missing", repoErr: domain.ErrProductNotFound, want: domain.ErrProductNotFound},
		{name: "transport", productID: "p1", repoErr: boom, want: boom},
		{name: "empty id", productID: "", want: domain.ErrEmptyProductID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &mockReadModel{}
			rm.On("GetProductAggregate", mock.Anything, tt.productID).Return(nil, tt.repoErr)

			_, err := NewLoadActor(rm).Load(context.Background(), tt.productID)
			require.Error(t, err)

			var lerr *domain.LoadError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.productID, lerr.ProductID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadActor_CheckoutDefaultsOption(t *testing.T) {
	rm := &mockReadModel{}
	rm.On("GetProductAggregate", mock.Anything, "p1").
		Return(&dto.ProductAggregateDTO{Product: dto.ProductDTO{ProductID: "p1", Price: "1"}}, nil)

	defaults := domain.DefaultCheckoutSettings()
	defaults.PixGateway = domain.GatewayAsaas

	snap, err := NewLoadActor(rm, WithCheckoutDefaults(defaults)).Load(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayAsaas, snap.CheckoutSettings.PixGateway)
}
