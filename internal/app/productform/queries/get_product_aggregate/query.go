package get_product_aggregate

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-form-service/internal/app/productform/dto"
)

// SpannerGetProductAggregateQuery reads every form section of one product
// inside a single read-only transaction, so all sections come from the same
// timestamp.
type SpannerGetProductAggregateQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductAggregateQuery(client *spanner.Client) *SpannerGetProductAggregateQuery {
	return &SpannerGetProductAggregateQuery{Client: client}
}

func (q *SpannerGetProductAggregateQuery) GetProductAggregate(ctx context.Context, productID string) (*dto.ProductAggregateDTO, error) {
	tx := q.Client.ReadOnlyTransaction()
	defer tx.Close()

	product, err := readProduct(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductAggregateDTO{Product: *product}

	if out.Offers, err = readOffers(ctx, tx, productID); err != nil {
		return nil, fmt.Errorf("read offers: %w", err)
	}
	if out.Checkout, err = readCheckout(ctx, tx, productID); err != nil {
		return nil, fmt.Errorf("read checkout settings: %w", err)
	}
	if out.Upsell, err = readUpsell(ctx, tx, productID); err != nil {
		return nil, fmt.Errorf("read upsell settings: %w", err)
	}
	if out.Affiliate, err = readAffiliate(ctx, tx, productID); err != nil {
		return nil, fmt.Errorf("read affiliate settings: %w", err)
	}
	if out.Credentials, err = readCredentials(ctx, tx, product.SellerID); err != nil {
		return nil, fmt.Errorf("read gateway credentials: %w", err)
	}
	return out, nil
}

// queryOne returns the first row of stmt, or nil when there is none.
func queryOne(ctx context.Context, tx *spanner.ReadOnlyTransaction, stmt spanner.Statement) (*spanner.Row, error) {
	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func nullStringPtr(ns spanner.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.StringVal
	return &s
}

func readProduct(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) (*dto.ProductDTO, error) {
	row, err := queryOne(ctx, tx, spanner.Statement{
		SQL: `SELECT product_id, seller_id, name, description, price,
		             support_name, support_email, delivery_url, external_delivery,
		             delivery_type, image_url, updated_at
		      FROM products
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, spanner.ErrRowNotFound
	}

	var (
		id, sellerID, name        string
		description               spanner.NullString
		price                     big.Rat
		supportName, supportEmail spanner.NullString
		deliveryURL               spanner.NullString
		externalDelivery          bool
		deliveryType, imageURL    spanner.NullString
		updatedAt                 time.Time
	)
	if err := row.Columns(&id, &sellerID, &name, &description, &price,
		&supportName, &supportEmail, &deliveryURL, &externalDelivery,
		&deliveryType, &imageURL, &updatedAt); err != nil {
		return nil, err
	}

	u := updatedAt.UTC().Format(time.RFC3339)
	return &dto.ProductDTO{
		ProductID:        id,
		SellerID:         sellerID,
		Name:             name,
		Description:      nullStringPtr(description),
		Price:            spanner.NumericString(&price),
		SupportName:      nullStringPtr(supportName),
		SupportEmail:     nullStringPtr(supportEmail),
		DeliveryURL:      nullStringPtr(deliveryURL),
		ExternalDelivery: externalDelivery,
		DeliveryType:     nullStringPtr(deliveryType),
		ImageURL:         nullStringPtr(imageURL),
		UpdatedAt:        &u,
	}, nil
}

func readOffers(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) ([]dto.OfferDTO, error) {
	iter := tx.Query(ctx, spanner.Statement{
		SQL: `SELECT offer_id, name, price, is_default, position
		      FROM product_offers
		      WHERE product_id = @id
		      ORDER BY position, offer_id`,
		Params: map[string]interface{}{"id": productID},
	})

	var offers []dto.OfferDTO
	err := iter.Do(func(row *spanner.Row) error {
		var (
			o     dto.OfferDTO
			price big.Rat
		)
		if err := row.Columns(&o.OfferID, &o.Name, &price, &o.IsDefault, &o.Position); err != nil {
			return err
		}
		o.Price = spanner.NumericString(&price)
		offers = append(offers, o)
		return nil
	})
	return offers, err
}

func readCheckout(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) (*dto.CheckoutSettingsDTO, error) {
	row, err := queryOne(ctx, tx, spanner.Statement{
		SQL: `SELECT require_name, require_email, require_phone, require_cpf,
		             default_payment_method, pix_gateway, credit_card_gateway
		      FROM product_checkout_settings
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	})
	if err != nil || row == nil {
		return nil, err
	}
	var c dto.CheckoutSettingsDTO
	if err := row.Columns(&c.RequireName, &c.RequireEmail, &c.RequirePhone, &c.RequireCPF,
		&c.DefaultPaymentMethod, &c.PixGateway, &c.CreditCardGateway); err != nil {
		return nil, err
	}
	return &c, nil
}

func readUpsell(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) (*dto.UpsellDTO, error) {
	row, err := queryOne(ctx, tx, spanner.Statement{
		SQL: `SELECT has_custom_thank_you_page, custom_page_url, redirect_ignoring_order_bump_failures
		      FROM product_upsell_settings
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	})
	if err != nil || row == nil {
		return nil, err
	}
	var (
		u       dto.UpsellDTO
		pageURL spanner.NullString
	)
	if err := row.Columns(&u.HasCustomThankYouPage, &pageURL, &u.RedirectIgnoringOrderBumpFailures); err != nil {
		return nil, err
	}
	u.CustomPageURL = nullStringPtr(pageURL)
	return &u, nil
}

func readAffiliate(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) (*dto.AffiliateDTO, error) {
	row, err := queryOne(ctx, tx, spanner.Statement{
		SQL: `SELECT enabled, default_rate, require_approval, attribution_model,
		             cookie_duration_days, support_email, show_in_marketplace,
		             marketplace_description, marketplace_category,
		             commission_on_order_bump, commission_on_upsell
		      FROM product_affiliate_settings
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	})
	if err != nil || row == nil {
		return nil, err
	}
	var (
		a                          dto.AffiliateDTO
		rate                       big.Rat
		supportEmail, desc, catgry spanner.NullString
	)
	if err := row.Columns(&a.Enabled, &rate, &a.RequireApproval, &a.AttributionModel,
		&a.CookieDurationDays, &supportEmail, &a.ShowInMarketplace,
		&desc, &catgry, &a.CommissionOnOrderBump, &a.CommissionOnUpsell); err != nil {
		return nil, err
	}
	a.DefaultRate = spanner.NumericString(&rate)
	a.SupportEmail = nullStringPtr(supportEmail)
	a.MarketplaceDescription = nullStringPtr(desc)
	a.MarketplaceCategory = nullStringPtr(catgry)
	return &a, nil
}

func readCredentials(ctx context.Context, tx *spanner.ReadOnlyTransaction, sellerID string) ([]dto.GatewayCredentialDTO, error) {
	iter := tx.Query(ctx, spanner.Statement{
		SQL: `SELECT gateway, configured
		      FROM gateway_credentials
		      WHERE seller_id = @seller`,
		Params: map[string]interface{}{"seller": sellerID},
	})

	var creds []dto.GatewayCredentialDTO
	err := iter.Do(func(row *spanner.Row) error {
		var c dto.GatewayCredentialDTO
		if err := row.Columns(&c.Gateway, &c.Configured); err != nil {
			return err
		}
		creds = append(creds, c)
		return nil
	})
	return creds, err
}
