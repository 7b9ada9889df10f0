// Package validation implements the authoritative server-side field rules for
// quote form submissions. It never trusts client-side validation outcomes:
// every rule is applied on every attempt and all violations are collected.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/printlab/quote-api/internal/models"
)

var (
	// Cyrillic or Latin letters, spaces and hyphens only
	personNameRegex = regexp.MustCompile(`(?i)^[а-яёa-z\s-]+$`)

	// Canonical phone grammar: optional +, leading digit 1-9, 7-14 more digits.
	// Applied after stripping spaces, parentheses and hyphens.
	phoneRegex = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

	// Local part alphanumeric with optional internal ._- , domain labels,
	// TLD of at least two letters.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
)

// Validator applies the submission field rules and reports violations per field.
type Validator struct {
	validate *validator.Validate
}

// New creates a submission validator with the custom field rules registered.
func New() *Validator {
	v := validator.New()

	// Report JSON field names so errors map directly onto form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs, neither applies here
	_ = v.RegisterValidation("person_name", validPersonName) //nolint:errcheck
	_ = v.RegisterValidation("phone_number", validPhone)     //nolint:errcheck
	_ = v.RegisterValidation("email_address", validEmail)    //nolint:errcheck

	return &Validator{validate: v}
}

// Normalize trims all free-text fields and canonicalizes the email address.
// Must run before ValidateSubmission so length rules see the trimmed values.
func Normalize(req *models.SubmitQuoteRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Company = strings.TrimSpace(req.Company)
	req.Task = strings.TrimSpace(req.Task)
	req.Promo = strings.TrimSpace(req.Promo)
}

// ValidateSubmission applies every field rule and returns all violations.
// A nil result means the submission passed the gate.
func (v *Validator) ValidateSubmission(req *models.SubmitQuoteRequest) []models.FieldError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldError{{Field: "", Message: "invalid request"}}
	}

	fieldErrors := make([]models.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
		})
	}
	return fieldErrors
}

func validPersonName(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

func validPhone(fl validator.FieldLevel) bool {
	cleaned := phoneSeparators.Replace(fl.Field().String())
	return phoneRegex.MatchString(cleaned)
}

func validEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "person_name":
		return "name may contain only letters, spaces and hyphens"
	case "phone_number":
		return "invalid phone number format"
	case "email_address":
		return "invalid email address"
	default:
		return fe.Field() + " is invalid"
	}
}
