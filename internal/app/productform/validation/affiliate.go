package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// Affiliate program limits.
var (
	MinAffiliateRate = decimal.NewFromInt(1)
	MaxAffiliateRate = decimal.NewFromInt(90)
)

const (
	MinMarketplaceDescription = 50
	MaxMarketplaceDescription = 500
)

// Affiliate only checks an enabled program; a disabled one may hold anything.
func Affiliate(data domain.EditedFormData) domain.FieldErrors {
	a := data.Affiliate
	if a == nil || !a.Enabled {
		return domain.FieldErrors{}
	}
	errs := checkStruct("affiliate", *a)

	if a.DefaultRate.LessThan(MinAffiliateRate) || a.DefaultRate.GreaterThan(MaxAffiliateRate) {
		errs.Add("affiliate.default_rate", "must be between 1 and 90")
	}

	if a.ShowInMarketplace {
		n := utf8.RuneCountInString(strings.TrimSpace(a.MarketplaceDescription))
		switch {
		case n < MinMarketplaceDescription:
			errs.Add("affiliate.marketplace_description", "minimum length is 50 characters")
		case n > MaxMarketplaceDescription:
			errs.Add("affiliate.marketplace_description", "maximum length is 500 characters")
		}
		if strings.TrimSpace(a.MarketplaceCategory) == "" {
			errs.Add("affiliate.marketplace_category", "is required to list in the marketplace")
		}
	}
	return errs
}
