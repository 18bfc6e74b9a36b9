// Package forms validates the contact, giving and prayer request forms and
// acknowledges submissions.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a single field failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Field messages keyed by "<Struct>.<jsonField>", optionally suffixed with
// ".<tag>" when one field has different messages per rule.
var messages = map[string]string{
	"ContactForm.name":    "Name must be at least 2 characters.",
	"ContactForm.email":   "Please enter a valid email address.",
	"ContactForm.phone":   "Please enter a valid phone number.",
	"ContactForm.subject": "Subject must be at least 5 characters.",
	"ContactForm.message": "Message must be at least 10 characters.",

	"DonationForm.amount.required": "Amount is required",
	"DonationForm.amount":          "Please enter a valid amount",
	"DonationForm.firstName":       "First name is required",
	"DonationForm.lastName":        "Last name is required",
	"DonationForm.email":           "Please enter a valid email",
	"DonationForm.paymentMethod":   "Payment method must be credit-card or bank-transfer",

	"PrayerRequestForm.name":    "Name must be at least 2 characters.",
	"PrayerRequestForm.email":   "Please enter a valid email address.",
	"PrayerRequestForm.request": "Please share your prayer request (at least 10 characters).",
}

// Validator checks form payloads
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the custom rules and reports fields by their JSON
// names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "amount", validateAmount)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// validateAmount accepts a positive decimal with at most two fractional digits
func validateAmount(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if !amountPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f > 0
}

// Validate returns nil when form is valid.
func (v *Validator) Validate(form any) []ValidationError {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	ns := fe.Namespace()
	if m, ok := messages[ns+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := messages[ns]; ok {
		return m
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
