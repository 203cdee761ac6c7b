package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/repo"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

type unknownEvent struct{}

func (unknownEvent) EventType() string     { return "x" }
func (unknownEvent) AggregateID() string   { return "p" }
func (unknownEvent) OccurredAt() time.Time { return time.Time{} }

func TestMarshalDomainEventPayload(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := MarshalDomainEventPayload(&domain.SectionsSavedEvent{
		ProductID: "p1",
		Tab:       domain.TabCheckout,
		Sections:  []domain.Section{domain.SectionCheckoutSettings},
		SavedAt:   at,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &got))
	assert.Equal(t, "p1", got["product_id"])
	assert.Equal(t, "checkout", got["tab"])
	assert.Equal(t, []any{"checkoutSettings"}, got["sections"])

	empty, err := MarshalDomainEventPayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)

	_, err = MarshalDomainEventPayload(unknownEvent{})
	assert.Error(t, err)
}

func TestAddOutboxEvents(t *testing.T) {
	plan := commitplan.NewPlan()
	now := time.Now().UTC()
	err := AddOutboxEvents(plan, repo.NewOutboxRepo(), now,
		&domain.ImageChangedEvent{ProductID: "p1", NewURL: "u", ChangedAt: now},
		&domain.OffersChangedEvent{ProductID: "p1", UpsertedIDs: []string{"a"}, ChangedAt: now},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Len())

	assert.Error(t, AddOutboxEvents(plan, repo.NewOutboxRepo(), now, unknownEvent{}))
}
