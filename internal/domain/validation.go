package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used to interpret phone numbers written without a
// country calling code.
const DefaultPhoneRegion = "US"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator configured with the domain's custom
// rules. Field names in errors are reported by their JSON name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// validateStruct runs the shared validator and converts the first failure
// into a *ValidationError.
func validateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error(), ErrValidation)
	}
	return FieldErrorToValidationError(fieldErrs[0])
}

// FieldErrorToValidationError maps a validator failure onto the domain's
// error vocabulary.
func FieldErrorToValidationError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return NewValidationError(field, "cannot be empty", ErrEmptyField)
	case "email":
		return NewValidationError(field, "must be a valid email address", ErrInvalidEmail)
	case "phone":
		return NewValidationError(field, "must be a valid phone number", ErrInvalidPhone)
	case "min":
		return NewValidationError(field, "must be at least "+fe.Param(), ErrValidation)
	case "max":
		return NewValidationError(field, "must be at most "+fe.Param(), ErrValidation)
	case "gte":
		return NewValidationError(field, "must be at least "+fe.Param(), ErrValidation)
	case "lte":
		return NewValidationError(field, "must be at most "+fe.Param(), ErrValidation)
	case "oneof":
		return NewValidationError(field, "must be one of: "+fe.Param(), ErrValidation)
	case "eq":
		return NewValidationError(field, "must be accepted", ErrAgreementRequired)
	case "url":
		return NewValidationError(field, "must be a valid URL", ErrValidation)
	default:
		return NewValidationError(field, "is invalid", ErrValidation)
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidPhone reports whether raw can be parsed as a plausible phone number.
func IsValidPhone(raw string) bool {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

// NormalizePhone returns raw in E.164 form.
func NormalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return "", NewValidationError("phone", "must be a valid phone number", ErrInvalidPhone)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
