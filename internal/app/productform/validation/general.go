package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

const (
	MinDescriptionLength = 100
	MaxImageBytes        = 5 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// General validates the general, image and offers sections; all three
// render on the general tab.
func General(data domain.EditedFormData) domain.FieldErrors {
	errs := checkStruct("general", data.General)
	g := data.General

	if strings.TrimSpace(g.Name) == "" {
		errs.Add("general.name", "is required")
	}
	if !g.Price.GreaterThan(decimal.Zero) {
		errs.Add("general.price", "must be greater than zero")
	}
	if !g.ExternalDelivery && g.DeliveryType != domain.DeliveryMembersArea && g.DeliveryURL == "" {
		errs.Add("general.delivery_url", "is required unless delivery is external or through the members area")
	}
	if g.DeliveryURL != "" {
		checkVar(errs, "general.delivery_url", g.DeliveryURL, "http_url")
	}

	errs.Merge(image(data.Image))
	errs.Merge(offers(data.Offers))
	return errs
}

func image(img domain.Image) domain.FieldErrors {
	errs := domain.FieldErrors{}
	up := img.Upload
	if up == nil {
		return errs
	}
	if !allowedImageTypes[up.ContentType] {
		errs.Add("image.upload", "must be a JPEG, PNG or WebP image")
	}
	if len(up.Data) == 0 {
		errs.Add("image.upload", "file is empty")
	}
	if len(up.Data) > MaxImageBytes {
		errs.Add("image.upload", fmt.Sprintf("must be at most %d MB", MaxImageBytes>>20))
	}
	return errs
}

func offers(o domain.Offers) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if len(o.Items) == 0 {
		return errs
	}

	defaults := 0
	seen := make(map[string]bool, len(o.Items))
	for i, it := range o.Items {
		prefix := fmt.Sprintf("offers.items[%d]", i)
		errs.Merge(checkStruct(prefix, it))
		if !it.Price.GreaterThan(decimal.Zero) {
			errs.Add(prefix+".price", "must be greater than zero")
		}
		if seen[it.ID] {
			errs.Add(prefix+".id", "duplicate offer")
		}
		seen[it.ID] = true
		if it.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		errs.Add("offers.items", "exactly one offer must be the default")
	}
	return errs
}
