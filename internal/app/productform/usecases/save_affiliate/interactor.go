package save_affiliate

import (
	"context"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	shared "github.com/murkotick/product-form-service/internal/app/productform/usecases/shared"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Interactor upserts the affiliate program. A product that never had one
// and still has none writes nothing.
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
	if req.Data.Affiliate == nil {
		return nil
	}
	now := it.Clock.Now()

	plan := commitplan.NewPlan()
	plan.Add(it.SettingsRepo.UpsertAffiliateMut(req.ProductID, *req.Data.Affiliate, now))

	if err := shared.AddOutboxEvents(plan, it.OutboxRepo, now, &domain.SectionsSavedEvent{
		ProductID: req.ProductID,
		Tab:       domain.TabAffiliates,
		Sections:  []domain.Section{domain.SectionAffiliate},
		SavedAt:   now,
	}); err != nil {
		return err
	}

	return it.Committer.Apply(ctx, plan)
}
