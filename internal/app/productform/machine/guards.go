package machine

import "github.com/murkotick/product-form-service/internal/app/productform/domain"

// IsDirty reports whether any section differs from the snapshot.
func IsDirty(s State) bool { return domain.AnyDirty(s.Context.Dirty) }

// CanEdit reports whether edit events are accepted.
func CanEdit(s State) bool { return s.Status == StatusReady && !s.Context.Saving }

// CanSave is the SAVE_ALL guard.
func CanSave(s State) bool {
	return s.Status == StatusReady && IsDirty(s) && !s.Context.Saving
}

// CanRetry is the RETRY guard.
func CanRetry(s State) bool {
	return s.Status == StatusLoadError && s.Context.LoadAttempts < s.Context.MaxLoadAttempts
}

// HasTabErrors reports whether any tab shows an error badge.
func HasTabErrors(s State) bool { return s.Context.Tabs.Errors.HasErrors() }
