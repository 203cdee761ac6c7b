// Package machine is the product form orchestration state machine: a pure
// transition function over a tagged union of events, plus a runtime that
// invokes the load and save actors when their states are entered.
package machine

import (
	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/tabs"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
	StatusSaving    Status = "saving"
	StatusLoadError Status = "loadError"
)

// DefaultMaxLoadAttempts bounds RETRY from loadError.
const DefaultMaxLoadAttempts = 3

// Context is everything the form carries between events.
type Context struct {
	ProductID string
	Server    domain.ServerDataSnapshot
	Edited    domain.EditedFormData

	// Dirty is recomputed from Server and Edited after every accepted event.
	Dirty domain.DirtyFlags

	ErrorsByTab domain.ErrorsByTab
	Tabs        tabs.Tracker
	// Navigation is the intent produced by the last failed save, if any.
	Navigation *tabs.Navigation

	Saving        bool
	SaveAttempts  int
	LastSaveError error

	LoadError       error
	LoadAttempts    int
	MaxLoadAttempts int
}

// State is the machine's status together with its context.
type State struct {
	Status  Status
	Context Context
}

// NewState returns the idle state. maxLoadAttempts <= 0 selects the default.
func NewState(maxLoadAttempts int) State {
	if maxLoadAttempts <= 0 {
		maxLoadAttempts = DefaultMaxLoadAttempts
	}
	return State{
		Status: StatusIdle,
		Context: Context{
			ErrorsByTab:     domain.ErrorsByTab{},
			Tabs:            tabs.NewTracker(),
			MaxLoadAttempts: maxLoadAttempts,
		},
	}
}

// Clone returns a deep copy that shares no mutable memory with s.
func (s State) Clone() State {
	c := s.Context
	c.Server = c.Server.Clone()
	c.Edited = c.Edited.Clone()
	c.ErrorsByTab = c.ErrorsByTab.Clone()
	c.Tabs = c.Tabs.Clone()
	if c.Navigation != nil {
		nav := *c.Navigation
		c.Navigation = &nav
	}
	s.Context = c
	return s
}

// ActiveTab is shorthand for the tracker's active tab.
func (s State) ActiveTab() domain.TabKey { return s.Context.Tabs.ActiveTab }

// TabErrors is the badge map shown on the tab strip.
func (s State) TabErrors() tabs.TabValidationMap { return s.Context.Tabs.Errors }
