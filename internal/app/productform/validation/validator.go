// Package validation holds the built-in per-tab validators. Each one is a
// pure function over the edited form data.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator reports field names by their json tag so error keys match
// what the client sends.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// checkStruct runs the struct tags of v and returns errors keyed as prefix.field.
func checkStruct(prefix string, v any) domain.FieldErrors {
	errs := domain.FieldErrors{}
	err := structValidator().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(prefix, err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(prefix+"."+fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("minimum length is %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("maximum length is %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// checkVar validates a single value against tag.
func checkVar(errs domain.FieldErrors, key string, v any, tag string) {
	if err := structValidator().Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			errs.Add(key, message(verrs[0]))
			return
		}
		errs.Add(key, err.Error())
	}
}
