package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks a form struct against its validation tags.
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// FieldError represents a field validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatErrors converts validator errors to a readable format.
func FormatErrors(err error) []FieldError {
	var fieldErrors []FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   e.Field(),
				Message: errorMessage(e),
			})
		}
	}

	return fieldErrors
}

func errorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "len":
		return "Value has the wrong length"
	case "numeric":
		return "Value must be numeric"
	default:
		return "Invalid value"
	}
}

// ShippingForm collects recipient details during the shipping step.
type ShippingForm struct {
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	MobilePhone string `validate:"required,min=7"`
	Eircode     string `validate:"required,min=3"`
}

// PaymentForm collects card details during the payment step. The fields are
// collected but never sent anywhere; only their shape is checked.
type PaymentForm struct {
	CardNumber     string `validate:"required"`
	CardholderName string `validate:"required"`
	ExpiryDate     string `validate:"required,len=5"`
	CVV            string `validate:"required,numeric,min=3,max=4"`
}

// NormalizeCardNumber strips whitespace and regroups the digits in blocks of
// four, the way the payment input renders them.
func NormalizeCardNumber(raw string) string {
	digits := strings.ReplaceAll(raw, " ", "")
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeExpiry reduces the input to digits and reinserts the MM/YY slash.
func NormalizeExpiry(raw string) string {
	var digits []rune
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) > 2 {
		return string(digits[:2]) + "/" + string(digits[2:])
	}
	return string(digits)
}
