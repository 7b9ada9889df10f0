package models

import "time"

// SubmitQuoteRequest represents a quote-request form submission from the client.
// Field rules are enforced by internal/validation, not by binding tags, so the
// gate can collect every violation instead of failing on the first one.
type SubmitQuoteRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50,person_name"`
	Phone   string `json:"phone" validate:"required,phone_number"`
	Email   string `json:"email" validate:"required,email_address"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Task    string `json:"task" validate:"required,min=10,max=1000"`
	Promo   string `json:"promo" validate:"omitempty,max=50"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmitQuoteResponse represents the response after submitting the form
type SubmitQuoteResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	ID      int64        `json:"id,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Submission is an accepted quote request. Immutable once created: the store
// only appends, ids are unique and strictly increasing, CreatedAt is set
// server-side exactly once.
type Submission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Task      string    `json:"task"`
	Promo     string    `json:"promo,omitempty"`
	OriginIP  string    `json:"origin_ip"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds submission counts derived by scanning the full store.
// Never cached: recomputed on every request.
type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	ThisWeek int `json:"thisWeek"`
}
