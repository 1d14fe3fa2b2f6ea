package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// Report JSON field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

var validationMessages = map[string]string{
	"required": "is required",
	"notblank": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"gte":      "must be greater than or equal to {param}",
	"min":      "must be at least {param} characters",
}

// validateRequest runs the struct tags on v and returns one FieldError per failure.
func validateRequest(v any) []apperr.FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []apperr.FieldError{{Field: "body", Description: err.Error()}}
	}

	errs := make([]apperr.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = "failed validation: " + fe.Tag()
		}
		errs = append(errs, apperr.FieldError{
			Field:       fe.Field(),
			Description: fe.Field() + " " + strings.ReplaceAll(msg, "{param}", fe.Param()),
		})
	}
	return errs
}

// decodeAndValidate reads the JSON body into dst and validates it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := readJSON(w, r, dst); err != nil {
		return apperr.Validation("invalid input")
	}
	if fields := validateRequest(dst); len(fields) > 0 {
		return apperr.Validation("validation failed", fields...)
	}
	return nil
}
