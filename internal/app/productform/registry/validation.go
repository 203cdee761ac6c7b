package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// ValidateFunc inspects the edited data and returns field errors for its tab.
// It must not perform network calls.
type ValidateFunc func(data domain.EditedFormData) domain.FieldErrors

// ValidationResult is the merged outcome of every validator.
type ValidationResult struct {
	ErrorsByTab   domain.ErrorsByTab
	FirstErrorTab domain.TabKey
}

func (r ValidationResult) Valid() bool { return r.FirstErrorTab == "" }

// Err returns a *domain.ValidationFailedError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &domain.ValidationFailedError{FirstErrorTab: r.FirstErrorTab, ErrorsByTab: r.ErrorsByTab.Clone()}
}

type ValidationRegistry struct {
	set    *ordered[ValidateFunc]
	logger *zap.Logger
}

func NewValidationRegistry(logger *zap.Logger) *ValidationRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationRegistry{
		set:    newOrdered[ValidateFunc](),
		logger: logger.Named("validation_registry"),
	}
}

// Register adds or replaces the validator of tab. The returned function
// removes this registration only.
func (r *ValidationRegistry) Register(tab domain.TabKey, order int, fn ValidateFunc, opts ...Option) (func(), error) {
	unregister, err := r.set.register(tab, order, fn, fn == nil, opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("validator registered", zap.String("tab", string(tab)), zap.Int("order", order))
	return unregister, nil
}

func (r *ValidationRegistry) Unregister(tab domain.TabKey) bool { return r.set.unregister(tab) }

func (r *ValidationRegistry) Len() int { return r.set.len() }

func (r *ValidationRegistry) Handlers() []HandlerInfo { return r.set.handlers() }

// RunAll runs every validator in ascending order and buckets their errors
// by tab. FirstErrorTab is the tab of the lowest-order failing validator.
func (r *ValidationRegistry) RunAll(data domain.EditedFormData) ValidationResult {
	res := ValidationResult{ErrorsByTab: domain.ErrorsByTab{}}

	for _, e := range r.set.sorted() {
		errs := r.runOne(e, data.Clone())
		if !errs.HasErrors() {
			continue
		}
		bucket, ok := res.ErrorsByTab[e.info.Tab]
		if !ok {
			bucket = domain.FieldErrors{}
			res.ErrorsByTab[e.info.Tab] = bucket
		}
		bucket.Merge(errs)
		if res.FirstErrorTab == "" {
			res.FirstErrorTab = e.info.Tab
		}
	}
	return res
}

func (r *ValidationRegistry) runOne(e entry[ValidateFunc], data domain.EditedFormData) (errs domain.FieldErrors) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("validator panicked",
				zap.String("tab", string(e.info.Tab)),
				zap.String("label", e.info.Label),
				zap.Any("panic", rec),
			)
			errs = domain.FieldErrors{
				domain.FormErrorKey: fmt.Sprintf("unexpected error while validating %s", e.info.Label),
			}
		}
	}()
	return e.fn(data)
}
