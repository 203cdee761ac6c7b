// Package tabs projects validation results onto tab badges and decides which
// tab the user should land on after a failed save.
package tabs

import (
	"maps"
	"slices"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// TabValidationState is the badge state of a single tab.
type TabValidationState struct {
	HasError     bool   `json:"has_error"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// TabValidationMap is keyed by tab; tabs without an entry are clean.
type TabValidationMap map[domain.TabKey]TabValidationState

// HasErrors reports whether any tab carries an error badge.
func (m TabValidationMap) HasErrors() bool {
	for _, st := range m {
		if st.HasError {
			return true
		}
	}
	return false
}

// Navigation asks the UI to switch tabs before surfacing an error.
type Navigation struct {
	From domain.TabKey `json:"from"`
	To   domain.TabKey `json:"to"`
}

// Result is the outcome of a validation or save pass as seen by the tracker.
type Result struct {
	ErrorsByTab   domain.ErrorsByTab
	FirstErrorTab domain.TabKey
}

// Tracker is a value type; every method returns an updated copy so it can
// live inside the machine context without aliasing.
type Tracker struct {
	Errors    TabValidationMap `json:"errors"`
	ActiveTab domain.TabKey    `json:"active_tab"`
}

func NewTracker() Tracker {
	return Tracker{Errors: TabValidationMap{}, ActiveTab: domain.TabGeneral}
}

func (t Tracker) Clone() Tracker {
	t.Errors = maps.Clone(t.Errors)
	if t.Errors == nil {
		t.Errors = TabValidationMap{}
	}
	return t
}

// ApplyValidationResult replaces the badge map with the tabs that failed in r.
// When r names a first error tab different from the active one, the tracker
// moves there and returns the navigation intent.
func (t Tracker) ApplyValidationResult(r Result) (Tracker, *Navigation) {
	out := t.Clone()
	out.Errors = TabValidationMap{}
	for tab, fe := range r.ErrorsByTab {
		if !fe.HasErrors() {
			continue
		}
		out.Errors[tab] = TabValidationState{HasError: true, ErrorMessage: fe.First()}
	}

	target := r.FirstErrorTab
	if target == "" {
		target = FirstTabWithError(out.Errors)
	}
	if target == "" || target == out.ActiveTab {
		return out, nil
	}

	nav := &Navigation{From: out.ActiveTab, To: target}
	out.ActiveTab = target
	return out, nav
}

// ClearTabErrors clears the named tabs, or every tab when none are given.
func (t Tracker) ClearTabErrors(keys ...domain.TabKey) Tracker {
	out := t.Clone()
	if len(keys) == 0 {
		out.Errors = TabValidationMap{}
		return out
	}
	for _, k := range keys {
		delete(out.Errors, k)
	}
	return out
}

// SetActive points the tracker at tab; it never triggers validation.
func (t Tracker) SetActive(tab domain.TabKey) Tracker {
	out := t.Clone()
	out.ActiveTab = tab
	return out
}

// FirstTabWithError returns the left-most failing tab in the fixed tab order.
// Tabs outside the order sort after every known tab, alphabetically.
func FirstTabWithError(m TabValidationMap) domain.TabKey {
	for _, k := range domain.TabOrder() {
		if m[k].HasError {
			return k
		}
	}
	var unknown []domain.TabKey
	for k, st := range m {
		if st.HasError {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return ""
	}
	return slices.Min(unknown)
}
