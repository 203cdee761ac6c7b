package save_checkout_settings

import (
	"context"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	shared "github.com/murkotick/product-form-service/internal/app/productform/usecases/shared"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Interactor upserts the checkout settings row.
type Interactor struct {
	SettingsRepo contracts.SettingsRepo
	OutboxRepo   contracts.OutboxRepo
	Committer    contracts.Committer
	Clock        clock.Clock
}

func NewInteractor(settingsRepo contracts.SettingsRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		SettingsRepo: settingsRepo,
		OutboxRepo:   outboxRepo,
		Committer:    committer,
		Clock:        clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req *registry.SaveRequest) error {
	now := it.Clock.Now()

	plan := commitplan.NewPlan()
	plan.Add(it.SettingsRepo.UpsertCheckoutMut(req.ProductID, req.Data.CheckoutSettings, now))

	if err := shared.AddOutboxEvents(plan, it.OutboxRepo, now, &domain.SectionsSavedEvent{
		ProductID: req.ProductID,
		Tab:       domain.TabCheckout,
		Sections:  []domain.Section{domain.SectionCheckoutSettings},
		SavedAt:   now,
	}); err != nil {
		return err
	}

	return it.Committer.Apply(ctx, plan)
}
