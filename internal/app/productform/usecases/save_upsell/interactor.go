package save_upsell

import (
	"context"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	shared "github.com/murkotick/product-form-service/internal/app/productform/usecases/shared"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Interactor upserts the upsell settings row.
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

	upsell := req.Data.Upsell
	if !upsell.HasCustomThankYouPage {
		upsell.CustomPageURL = ""
	}

	plan := commitplan.NewPlan()
	plan.Add(it.SettingsRepo.UpsertUpsellMut(req.ProductID, upsell, now))

	if err := shared.AddOutboxEvents(plan, it.OutboxRepo, now, &domain.SectionsSavedEvent{
		ProductID: req.ProductID,
		Tab:       domain.TabUpsell,
		Sections:  []domain.Section{domain.SectionUpsell},
		SavedAt:   now,
	}); err != nil {
		return err
	}

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return err
	}
	req.Data.Upsell = upsell
	return nil
}
