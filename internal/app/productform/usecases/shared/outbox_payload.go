package shared

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/models/m_outbox"
	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.SectionsSavedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"tab":         e.Tab,
			"sections":    e.Sections,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.ImageChangedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"previous_url": e.PreviousURL,
			"new_url":      e.NewURL,
			"occurred_at":  e.OccurredAt(),
		}

	case *domain.OffersChangedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"upserted_ids": e.UpsertedIDs,
			"deleted_ids":  e.DeletedIDs,
			"occurred_at":  e.OccurredAt(),
		}

	default:
		return "", fmt.Errorf("unsupported domain event %T", ev)
	}

	b, err := json.Marshal(payload)
	return string(b), err
}

// AddOutboxEvents appends one outbox insert per event to plan.
func AddOutboxEvents(plan *commitplan.Plan, repo contracts.OutboxRepo, now time.Time, events ...domain.DomainEvent) error {
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.Add(repo.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       m_outbox.StatusPending,
			CreatedAtUTC: now,
		}))
	}
	return nil
}
