package domain

import (
	"maps"
	"slices"
)

// FormErrorKey buckets errors that do not belong to a single field.
const FormErrorKey = "_form"

// FieldErrors maps a field path to a user-facing message.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

func (f FieldErrors) HasErrors() bool { return len(f) > 0 }

// Merge copies other into f; existing messages win.
func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f.Add(k, v)
	}
}

func (f FieldErrors) Clone() FieldErrors {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}

// First returns the message of the alphabetically first field, which keeps
// tab badges stable across runs.
func (f FieldErrors) First() string {
	if len(f) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(f))
	return f[keys[0]]
}

// ErrorsByTab groups field errors by the tab that owns them.
type ErrorsByTab map[TabKey]FieldErrors

func (e ErrorsByTab) Clone() ErrorsByTab {
	if e == nil {
		return nil
	}
	out := make(ErrorsByTab, len(e))
	for k, v := range e {
		out[k] = v.Clone()
	}
	return out
}

// HasErrors reports whether any tab has at least one error.
func (e ErrorsByTab) HasErrors() bool {
	for _, fe := range e {
		if fe.HasErrors() {
			return true
		}
	}
	return false
}
