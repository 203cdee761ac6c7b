package domain

import "time"

// DomainEvent is recorded in the outbox alongside the section mutations
// that produced it.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// SectionsSavedEvent is emitted by a save handler once its sections are written.
type SectionsSavedEvent struct {
	ProductID string
	Tab       TabKey
	Sections  []Section
	SavedAt   time.Time
}

func (e *SectionsSavedEvent) EventType() string     { return "product.sections_saved" }
func (e *SectionsSavedEvent) AggregateID() string   { return e.ProductID }
func (e *SectionsSavedEvent) OccurredAt() time.Time { return e.SavedAt }

// ImageChangedEvent is emitted when the product image is replaced or removed.
type ImageChangedEvent struct {
	ProductID   string
	PreviousURL string
	NewURL      string
	ChangedAt   time.Time
}

func (e *ImageChangedEvent) EventType() string     { return "product.image_changed" }
func (e *ImageChangedEvent) AggregateID() string   { return e.ProductID }
func (e *ImageChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// OffersChangedEvent is emitted when offers are upserted or deleted.
type OffersChangedEvent struct {
	ProductID   string
	UpsertedIDs []string
	DeletedIDs  []string
	ChangedAt   time.Time
}

func (e *OffersChangedEvent) EventType() string     { return "product.offers_changed" }
func (e *OffersChangedEvent) AggregateID() string   { return e.ProductID }
func (e *OffersChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
