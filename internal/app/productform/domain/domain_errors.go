package domain

import (
	"errors"
	"fmt"
)

// Load errors
var (
	// ErrProductNotFound indicates that no product exists for the requested id.
	ErrProductNotFound = errors.New("product not found")

	// ErrEmptyProductID indicates a load was requested without a product id.
	ErrEmptyProductID = errors.New("product id is required")

	// ErrMaxLoadAttempts indicates the retry budget for loading is exhausted.
	ErrMaxLoadAttempts = errors.New("maximum load attempts reached")
)

// State machine errors
var (
	// ErrEventRejected indicates an event that is not valid in the current state,
	// or that a guard refused.
	ErrEventRejected = errors.New("event rejected")

	// ErrSaveInProgress indicates an edit or save dispatched while a save is running.
	ErrSaveInProgress = errors.New("save in progress")

	// ErrLoadInProgress indicates a load dispatched while one is running.
	ErrLoadInProgress = errors.New("load in progress")

	// ErrNothingToSave indicates SAVE_ALL with no dirty section.
	ErrNothingToSave = errors.New("no unsaved changes")

	// ErrMachineClosed indicates an event sent to a torn down machine.
	ErrMachineClosed = errors.New("form machine closed")

	// ErrUnknownOffer indicates a delete for an offer id not in the list.
	ErrUnknownOffer = errors.New("offer not found")

	// ErrInvalidOffer indicates an offer without an id.
	ErrInvalidOffer = errors.New("offer id is required")
)

// Registry errors
var (
	// ErrUnknownTab indicates a handler registered for a tab outside the tab order.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrInvalidHandler indicates a nil handler function or a negative order.
	ErrInvalidHandler = errors.New("invalid handler")

	// ErrHandlerPanicked indicates a handler panicked and was recovered.
	ErrHandlerPanicked = errors.New("handler panicked")

	// ErrHandlerFailed is reported when a save run fails without naming a handler.
	ErrHandlerFailed = errors.New("save handler failed")

	// ErrValidationFailed indicates that at least one tab has field errors.
	ErrValidationFailed = errors.New("validation failed")
)

// LoadError wraps a failed aggregate fetch.
type LoadError struct {
	ProductID string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load product %s: %v", e.ProductID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationFailedError carries the field errors of a failed validation pass.
type ValidationFailedError struct {
	FirstErrorTab TabKey
	ErrorsByTab   ErrorsByTab
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed on tab %s", e.FirstErrorTab)
}

func (e *ValidationFailedError) Unwrap() error { return ErrValidationFailed }

// SaveError reports the handler that stopped a save run.
type SaveError struct {
	TabKey TabKey
	Order  int
	Err    error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s (order %d): %v", e.TabKey, e.Order, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
