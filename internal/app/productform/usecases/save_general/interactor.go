package save_general

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	shared "github.com/murkotick/product-form-service/internal/app/productform/usecases/shared"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// offerNamespace derives stable ids for offers created in the form.
var offerNamespace = uuid.MustParse("8f5c1b2e-3d4a-4f6b-9c7d-1e2f3a4b5c6d")

// Interactor persists the general tab: product fields, image and offers,
// in one Spanner transaction.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	OfferRepo   contracts.OfferRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Images      contracts.ImageStore
	Clock       clock.Clock
}

func NewInteractor(productRepo contracts.ProductRepo, offerRepo contracts.OfferRepo, outboxRepo contracts.OutboxRepo,
	committer contracts.Committer, images contracts.ImageStore, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: productRepo,
		OfferRepo:   offerRepo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Images:      images,
		Clock:       clk,
	}
}

// PersistentOfferID maps a temporary offer id to the id it is stored under.
// The mapping is deterministic so a retried save upserts the same row.
func PersistentOfferID(productID, tempID string) string {
	return uuid.NewSHA1(offerNamespace, []byte(productID+"/"+tempID)).String()
}

// ImageKey is the content-addressed object key of an upload.
func ImageKey(productID string, up *domain.ImageUpload) string {
	ext := strings.ToLower(path.Ext(up.FileName))
	if ext == "" {
		ext = extFor(up.ContentType)
	}
	return fmt.Sprintf("products/%s/%s%s", productID, up.ContentHash(), ext)
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}

// Execute records server-assigned values (image url, offer ids) on
// req.Data so the committed snapshot reflects them.
func (it *Interactor) Execute(ctx context.Context, req *registry.SaveRequest) error {
	now := it.Clock.Now()
	data := req.Data
	events := []domain.DomainEvent{}

	// 1. Image upload happens before the transaction; the key is content
	// addressed so re-uploading the same file is a no-op overwrite.
	prevURL := data.Image.URL
	imageURL := prevURL
	switch {
	case data.Image.Upload != nil:
		if it.Images == nil {
			return fmt.Errorf("upload image: no image store configured")
		}
		up := data.Image.Upload
		url, err := it.Images.Put(ctx, ImageKey(req.ProductID, up), bytes.NewReader(up.Data), up.ContentType)
		if err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	case data.Image.PendingRemoval:
		imageURL = ""
	}
	if imageURL != prevURL {
		events = append(events, &domain.ImageChangedEvent{
			ProductID:   req.ProductID,
			PreviousURL: prevURL,
			NewURL:      imageURL,
			ChangedAt:   now,
		})
	}

	// 2. Assign persistent ids to offers created in the form.
	offers := make([]domain.Offer, len(data.Offers.Items))
	upserted := make([]string, 0, len(offers))
	for i, o := range data.Offers.Items {
		if o.Temporary {
			o.ID = PersistentOfferID(req.ProductID, o.ID)
			o.Temporary = false
		}
		offers[i] = o
		upserted = append(upserted, o.ID)
	}

	// 3. Collect mutations
	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.UpdateGeneralMut(req.ProductID, data.General, imageURL, now))
	plan.Add(it.OfferRepo.DeleteMuts(req.ProductID, data.Offers.DeletedIDs)...)
	plan.Add(it.OfferRepo.UpsertMuts(req.ProductID, offers, now)...)

	if data.Offers.Modified || len(data.Offers.DeletedIDs) > 0 {
		events = append(events, &domain.OffersChangedEvent{
			ProductID:   req.ProductID,
			UpsertedIDs: upserted,
			DeletedIDs:  append([]string(nil), data.Offers.DeletedIDs...),
			ChangedAt:   now,
		})
	}
	events = append(events, &domain.SectionsSavedEvent{
		ProductID: req.ProductID,
		Tab:       domain.TabGeneral,
		Sections:  []domain.Section{domain.SectionGeneral, domain.SectionImage, domain.SectionOffers},
		SavedAt:   now,
	})

	// 4. Outbox events
	if err := shared.AddOutboxEvents(plan, it.OutboxRepo, now, events...); err != nil {
		return err
	}

	// 5. Apply via committer
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return err
	}

	// 6. Record what the server now holds.
	data.Image = domain.Image{URL: imageURL}
	data.Offers = domain.Offers{Items: offers}
	return nil
}
