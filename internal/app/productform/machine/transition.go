package machine

import (
	"fmt"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/tabs"
)

// Transition applies ev to s. Rejected events return s unchanged.
func Transition(s State, ev Event) State {
	next, _ := Step(s, ev)
	return next
}

// Step is Transition that also reports why an event was rejected.
// The returned state never shares mutable memory with s.
func Step(s State, ev Event) (State, error) {
	next := s.Clone()
	if err := apply(&next, ev); err != nil {
		return s, err
	}
	next.Context.Dirty = domain.CalculateDirtyFlags(&next.Context.Server, &next.Context.Edited, next.Context.Edited.Markers())
	return next, nil
}

func reject(s *State, ev Event, cause error) error {
	return fmt.Errorf("%w: %s in state %s: %w", domain.ErrEventRejected, ev.Name(), s.Status, cause)
}

func rejectState(s *State, ev Event) error {
	return fmt.Errorf("%w: %s in state %s", domain.ErrEventRejected, ev.Name(), s.Status)
}

func apply(s *State, ev Event) error {
	c := &s.Context

	if sec, ok := sectionOf(ev); ok {
		if s.Status != StatusReady {
			return rejectState(s, ev)
		}
		if c.Saving {
			return reject(s, ev, domain.ErrSaveInProgress)
		}
		if err := applyEdit(c, ev); err != nil {
			return reject(s, ev, err)
		}
		// An edit supersedes any stale error shown for its tab.
		tab := sec.Tab()
		delete(c.ErrorsByTab, tab)
		c.Tabs = c.Tabs.ClearTabErrors(tab)
		return nil
	}

	switch e := ev.(type) {
	case Load:
		if s.Status == StatusLoading {
			return reject(s, ev, domain.ErrLoadInProgress)
		}
		if s.Status != StatusIdle {
			return rejectState(s, ev)
		}
		if e.ProductID == "" {
			return reject(s, ev, domain.ErrEmptyProductID)
		}
		s.Status = StatusLoading
		c.ProductID = e.ProductID
		c.LoadAttempts = 1
		c.LoadError = nil

	case ReceiveData:
		if s.Status != StatusLoading {
			return rejectState(s, ev)
		}
		snap := domain.NewSnapshot(e.Snapshot)
		if snap.ProductID == "" {
			snap.ProductID = c.ProductID
		}
		s.Status = StatusReady
		c.Server = snap
		c.Edited = domain.EditedFromSnapshot(snap)
		c.LoadError = nil
		c.LoadAttempts = 0
		clearErrors(c)

	case LoadFailed:
		if s.Status != StatusLoading {
			return rejectState(s, ev)
		}
		s.Status = StatusLoadError
		c.LoadError = e.Err

	case Retry:
		if s.Status != StatusLoadError {
			return rejectState(s, ev)
		}
		if !CanRetry(*s) {
			return reject(s, ev, domain.ErrMaxLoadAttempts)
		}
		s.Status = StatusLoading
		c.LoadAttempts++

	case SaveAll:
		if c.Saving {
			return reject(s, ev, domain.ErrSaveInProgress)
		}
		if s.Status != StatusReady {
			return rejectState(s, ev)
		}
		if !CanSave(*s) {
			return reject(s, ev, domain.ErrNothingToSave)
		}
		s.Status = StatusSaving
		c.Saving = true
		c.SaveAttempts++
		c.LastSaveError = nil
		clearErrors(c)

	case ValidationFailed:
		if s.Status != StatusSaving {
			return rejectState(s, ev)
		}
		s.Status = StatusReady
		c.Saving = false
		c.ErrorsByTab = e.ErrorsByTab.Clone()
		if c.ErrorsByTab == nil {
			c.ErrorsByTab = domain.ErrorsByTab{}
		}
		c.LastSaveError = &domain.ValidationFailedError{FirstErrorTab: e.FirstErrorTab, ErrorsByTab: e.ErrorsByTab.Clone()}
		c.Tabs, c.Navigation = c.Tabs.ApplyValidationResult(tabs.Result{
			ErrorsByTab:   c.ErrorsByTab,
			FirstErrorTab: e.FirstErrorTab,
		})

	case SaveSucceeded:
		if s.Status != StatusSaving {
			return rejectState(s, ev)
		}
		s.Status = StatusReady
		c.Saving = false
		c.Server = e.Committed.Commit(c.Server)
		c.Edited = domain.EditedFromSnapshot(c.Server)
		c.SaveAttempts = 0
		c.LastSaveError = nil
		clearErrors(c)

	case SaveFailed:
		if s.Status != StatusSaving {
			return rejectState(s, ev)
		}
		s.Status = StatusReady
		c.Saving = false
		c.LastSaveError = domain.ErrHandlerFailed
		if e.Err != nil {
			c.LastSaveError = e.Err
		}
		c.ErrorsByTab = domain.ErrorsByTab{}
		var failedTab domain.TabKey
		if e.Err != nil && e.Err.TabKey != "" {
			failedTab = e.Err.TabKey
			c.ErrorsByTab[failedTab] = domain.FieldErrors{domain.FormErrorKey: e.Err.Err.Error()}
		}
		c.Tabs, c.Navigation = c.Tabs.ApplyValidationResult(tabs.Result{
			ErrorsByTab:   c.ErrorsByTab,
			FirstErrorTab: failedTab,
		})

	case DiscardChanges:
		if s.Status != StatusReady {
			return rejectState(s, ev)
		}
		if c.Saving {
			return reject(s, ev, domain.ErrSaveInProgress)
		}
		c.Edited = domain.EditedFromSnapshot(c.Server)
		clearErrors(c)

	case SetTab:
		if s.Status != StatusReady && s.Status != StatusSaving {
			return rejectState(s, ev)
		}
		if !e.Tab.Valid() {
			return reject(s, ev, domain.ErrUnknownTab)
		}
		c.Tabs = c.Tabs.SetActive(e.Tab)

	default:
		return fmt.Errorf("%w: unsupported event %T", domain.ErrEventRejected, ev)
	}
	return nil
}

func applyEdit(c *Context, ev Event) error {
	ed := &c.Edited
	switch e := ev.(type) {
	case EditGeneral:
		ed.General = ed.General.Apply(e.Patch)
	case EditImage:
		ed.Image = ed.Image.Apply(e.Patch)
	case ResetImage:
		ed.Image = c.Server.Image.Clone()
	case EditOffers:
		ed.Offers = ed.Offers.Apply(e.Patch)
	case AddOffer:
		if e.Offer.ID == "" {
			return domain.ErrInvalidOffer
		}
		ed.Offers = ed.Offers.Add(e.Offer)
	case DeleteOffer:
		next, ok := ed.Offers.Remove(e.OfferID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownOffer, e.OfferID)
		}
		ed.Offers = next
	case EditCheckoutSettings:
		ed.CheckoutSettings = ed.CheckoutSettings.Apply(e.Patch)
	case EditUpsell:
		ed.Upsell = ed.Upsell.Apply(e.Patch)
	case EditAffiliate:
		ed.Affiliate = ed.Affiliate.Apply(e.Patch)
	}
	return nil
}

func clearErrors(c *Context) {
	c.ErrorsByTab = domain.ErrorsByTab{}
	c.Tabs = c.Tabs.ClearTabErrors()
	c.Navigation = nil
}
