package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single failed field rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

// Error joins the per-field messages into one human-readable string,
// matching the API's single-message error envelope.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve))
	for i, e := range ve {
		messages[i] = e.Message
	}
	return strings.Join(messages, ", ")
}

// Validator wraps go-playground/validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerCustomRules()

	return v
}

// Validate validates a struct and returns nil when all rules pass.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: v.errorMessage(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}
	return errors
}

func (v *Validator) registerCustomRules() {
	// password_strength: min 8 chars, upper, lower, digit, special.
	_ = v.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 {
			return false
		}
		var hasUpper, hasLower, hasDigit, hasSpecial bool
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				hasSpecial = true
			}
		}
		return hasUpper && hasLower && hasDigit && hasSpecial
	})

	// course_code: 2-20 letters/digits, case-insensitive (stored uppercase).
	_ = v.validate.RegisterValidation("course_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) < 2 || len(code) > 20 {
			return false
		}
		for _, r := range code {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	})
}

func (v *Validator) errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "password_strength":
		return fmt.Sprintf("%s must be at least 8 characters with uppercase, lowercase, digit and special character", err.Field())
	case "course_code":
		return fmt.Sprintf("%s must be 2-20 letters or digits", err.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
