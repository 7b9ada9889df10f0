package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/internal/validation"
)

func validRequest() *models.SubmitQuoteRequest {
	return &models.SubmitQuoteRequest{
		Name:  "Anna Petrova",
		Phone: "+7 (912) 345-67-89",
		Email: "anna@example.com",
		Task:  "Print 500 business cards",
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	v := validation.New()

	req := validRequest()
	validation.Normalize(req)

	assert.Empty(t, v.ValidateSubmission(req))
}

func TestValidateSubmission_CollectsAllErrors(t *testing.T) {
	v := validation.New()

	req := &models.SubmitQuoteRequest{
		Name:  "A",
		Phone: "abc",
		Email: "not-an-email",
		Task:  "short",
	}
	validation.Normalize(req)

	errs := v.ValidateSubmission(req)
	require.Len(t, errs, 4)

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "phone", "email", "task"}, fields)
}

func TestValidateSubmission_Name(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"latin", "Anna Petrova", true},
		{"cyrillic", "Анна Петрова", true},
		{"hyphenated", "Jean-Pierre", true},
		{"single rune", "A", false},
		{"digits", "Anna2", false},
		{"punctuation", "Anna!", false},
		{"too long", strings.Repeat("a", 51), false},
		{"at max", strings.Repeat("a", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Name = tt.value
			validation.Normalize(req)

			errs := v.ValidateSubmission(req)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "name", errs[0].Field)
			}
		})
	}
}

func TestValidateSubmission_Phone(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"formatted mobile", "+7 (912) 345-67-89", true},
		{"bare digits", "79123456789", true},
		{"domestic prefix", "89123456789", true},
		{"international", "+4915123456789", true},
		{"minimum length", "+12345678", true},
		{"too short", "+1234567", false},
		{"too long", "+1234567890123456", false},
		{"leading zero", "+0123456789", false},
		{"letters", "phone-number", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Phone = tt.value
			validation.Normalize(req)

			errs := v.ValidateSubmission(req)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "phone", errs[0].Field)
			}
		})
	}
}

func TestValidateSubmission_Email(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain", "a@b.cd", true},
		{"dotted local part", "first.last@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"no tld", "a@b", false},
		{"missing local part", "@example.com", false},
		{"leading dot", ".user@example.com", false},
		{"trailing dot", "user.@example.com", false},
		{"one letter tld", "user@example.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Email = tt.value
			validation.Normalize(req)

			errs := v.ValidateSubmission(req)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "email", errs[0].Field)
			}
		})
	}
}

func TestValidateSubmission_TaskLengthBoundary(t *testing.T) {
	v := validation.New()

	req := validRequest()
	req.Task = strings.Repeat("a", 9)
	errs := v.ValidateSubmission(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "task", errs[0].Field)

	req.Task = strings.Repeat("a", 10)
	assert.Empty(t, v.ValidateSubmission(req))

	req.Task = strings.Repeat("a", 1001)
	errs = v.ValidateSubmission(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "task", errs[0].Field)
}

func TestValidateSubmission_OptionalFields(t *testing.T) {
	v := validation.New()

	req := validRequest()
	req.Company = ""
	req.Promo = ""
	assert.Empty(t, v.ValidateSubmission(req))

	req.Company = strings.Repeat("c", 101)
	errs := v.ValidateSubmission(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "company", errs[0].Field)

	req.Company = ""
	req.Promo = strings.Repeat("p", 51)
	errs = v.ValidateSubmission(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "promo", errs[0].Field)
}

func TestNormalize(t *testing.T) {
	req := &models.SubmitQuoteRequest{
		Name:    "  Anna Petrova  ",
		Phone:   " +79123456789 ",
		Email:   " Anna@Example.COM ",
		Company: " Print Co ",
		Task:    "  Print 500 business cards  ",
		Promo:   " SPRING ",
	}

	validation.Normalize(req)

	assert.Equal(t, "Anna Petrova", req.Name)
	assert.Equal(t, "+79123456789", req.Phone)
	assert.Equal(t, "anna@example.com", req.Email)
	assert.Equal(t, "Print Co", req.Company)
	assert.Equal(t, "Print 500 business cards", req.Task)
	assert.Equal(t, "SPRING", req.Promo)
}

func TestNormalize_WhitespaceOnlyBecomesRequired(t *testing.T) {
	v := validation.New()

	req := validRequest()
	req.Name = "   "
	validation.Normalize(req)

	errs := v.ValidateSubmission(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "name is required", errs[0].Message)
}
