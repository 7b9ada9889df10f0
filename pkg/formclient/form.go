// Package formclient is a client library for the quote form API. It mirrors
// the browser form's behavior: per-field live validation with an explicit
// finite-state object per field, cosmetic phone formatting while typing, an
// optimistic full-form check before any network call, and timed result
// banners. All state is local to one Controller instance, constructed fresh
// per form lifetime.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/printlab/quote-api/pkg/httpclient"
)

// FieldState is the validation state of a single form field.
type FieldState int

const (
	StateUntouched FieldState = iota
	StateValid
	StateInvalid
)

// Validated field names. They match the JSON payload keys, so server-side
// field errors map directly back onto fields.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldTask    = "task"
	FieldPromo   = "promo"
)

// ErrFormInvalid is returned by Submit when local validation fails;
// no network call is made in that case.
var ErrFormInvalid = errors.New("form has invalid fields")

// BannerKind distinguishes success and failure banners.
type BannerKind int

const (
	BannerSuccess BannerKind = iota
	BannerFailure
)

// Banner is a timed result message shown after a submission exchange.
type Banner struct {
	Kind    BannerKind
	Message string
	shownAt time.Time
}

// Draft holds the form's field values before submission.
type Draft struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Task    string `json:"task"`
	Promo   string `json:"promo"`
}

// Response is the server's reply to a submission.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

const bannerTTL = 5 * time.Second

type fieldStatus struct {
	state   FieldState
	message string
}

// Controller drives one quote form: it tracks per-field state, gates
// submission on local validation, and reflects the server's verdict back
// onto the fields.
type Controller struct {
	endpoint string
	client   httpclient.Client

	draft  Draft
	fields map[string]*fieldStatus

	pending bool
	banner  *Banner

	now func() time.Time
}

// NewController creates a controller posting to endpoint via client.
func NewController(endpoint string, client httpclient.Client) *Controller {
	return &Controller{
		endpoint: endpoint,
		client:   client,
		fields: map[string]*fieldStatus{
			FieldName:  {},
			FieldPhone: {},
			FieldEmail: {},
			FieldTask:  {},
		},
		now: time.Now,
	}
}

// Input records a keystroke-level value change. The phone field is passed
// through the live display formatter. A field is only re-validated on input
// while it is currently invalid, so users are not nagged mid-first-keystroke.
func (c *Controller) Input(field, value string) {
	if field == FieldPhone {
		value = FormatPhoneLive(value)
	}
	c.setDraftField(field, value)

	if fs, ok := c.fields[field]; ok && fs.state == StateInvalid {
		c.validateField(field)
	}
}

// Blur re-validates the field unconditionally, moving it to valid or invalid.
func (c *Controller) Blur(field string) {
	if _, ok := c.fields[field]; ok {
		c.validateField(field)
	}
}

// FieldState returns the state of a validated field and its error message.
// Unvalidated fields (company, promo) report untouched with no message.
func (c *Controller) FieldState(field string) (FieldState, string) {
	fs, ok := c.fields[field]
	if !ok {
		return StateUntouched, ""
	}
	return fs.state, fs.message
}

// Draft returns a copy of the current form values.
func (c *Controller) Draft() Draft {
	return c.draft
}

// Pending reports whether a submission exchange is in flight. The submit
// control must be disabled exactly while this is true.
func (c *Controller) Pending() bool {
	return c.pending
}

// ActiveBanner returns the current result banner, or nil once it has
// auto-dismissed (5 seconds after being shown).
func (c *Controller) ActiveBanner() *Banner {
	if c.banner == nil || c.now().Sub(c.banner.shownAt) >= bannerTTL {
		return nil
	}
	return c.banner
}

// ValidateAll re-validates every tracked field and reports whether the whole
// form is submittable.
func (c *Controller) ValidateAll() bool {
	valid := true
	for field := range c.fields {
		if !c.validateField(field) {
			valid = false
		}
	}
	return valid
}

// Submit runs the whole-form gate and, if it passes, posts the draft to the
// server. The pending flag is always cleared when the exchange completes,
// success or not, so the submit control is never left stuck disabled.
// ErrFormInvalid means no network call was made; any other error is a
// transport failure, shown as a generic retry-later banner.
func (c *Controller) Submit(ctx context.Context) (*Response, error) {
	if !c.ValidateAll() {
		return nil, ErrFormInvalid
	}

	c.pending = true
	defer func() { c.pending = false }()

	payload := c.draft
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Company = strings.TrimSpace(payload.Company)
	payload.Task = strings.TrimSpace(payload.Task)
	payload.Promo = strings.TrimSpace(payload.Promo)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		c.showBanner(BannerFailure, "Could not reach the server. Please check your connection.")
		return nil, fmt.Errorf("failed to submit form: %w", err)
	}
	defer httpResp.Body.Close()

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		c.showBanner(BannerFailure, "Something went wrong. Please try again later.")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if httpResp.StatusCode == http.StatusOK && resp.Success {
		c.reset()
		message := resp.Message
		if message == "" {
			message = "Your request has been submitted! We will contact you shortly."
		}
		c.showBanner(BannerSuccess, message)
		return &resp, nil
	}

	// Map server-side field errors back onto their fields
	for _, fe := range resp.Errors {
		if fs, ok := c.fields[fe.Field]; ok {
			fs.state = StateInvalid
			fs.message = fe.Message
		}
	}

	message := resp.Message
	if message == "" {
		message = "Something went wrong. Please try again later."
	}
	c.showBanner(BannerFailure, message)
	return &resp, nil
}

func (c *Controller) setDraftField(field, value string) {
	switch field {
	case FieldName:
		c.draft.Name = value
	case FieldPhone:
		c.draft.Phone = value
	case FieldEmail:
		c.draft.Email = value
	case FieldCompany:
		c.draft.Company = value
	case FieldTask:
		c.draft.Task = value
	case FieldPromo:
		c.draft.Promo = value
	}
}

func (c *Controller) validateField(field string) bool {
	fs, ok := c.fields[field]
	if !ok {
		return true
	}

	value := strings.TrimSpace(c.draftField(field))

	var message string
	switch field {
	case FieldName:
		switch {
		case value == "":
			message = "Please enter your name"
		case !IsValidName(value):
			message = "Name must contain at least 2 characters"
		}
	case FieldPhone:
		switch {
		case value == "":
			message = "Please enter your phone number"
		case !IsValidPhone(value):
			message = "Please enter a valid phone number"
		}
	case FieldEmail:
		switch {
		case value == "":
			message = "Please enter your email address"
		case !IsValidEmail(value):
			message = "Please enter a valid email address"
		}
	case FieldTask:
		switch {
		case value == "":
			message = "Please describe your task"
		case !IsValidTask(value):
			message = "Task description must contain at least 10 characters"
		}
	}

	if message != "" {
		fs.state = StateInvalid
		fs.message = message
		return false
	}
	fs.state = StateValid
	fs.message = ""
	return true
}

func (c *Controller) draftField(field string) string {
	switch field {
	case FieldName:
		return c.draft.Name
	case FieldPhone:
		return c.draft.Phone
	case FieldEmail:
		return c.draft.Email
	case FieldCompany:
		return c.draft.Company
	case FieldTask:
		return c.draft.Task
	case FieldPromo:
		return c.draft.Promo
	}
	return ""
}

// reset clears the draft and returns every field to untouched, as after a
// successful submission.
func (c *Controller) reset() {
	c.draft = Draft{}
	for _, fs := range c.fields {
		fs.state = StateUntouched
		fs.message = ""
	}
}

func (c *Controller) showBanner(kind BannerKind, message string) {
	c.banner = &Banner{Kind: kind, Message: message, shownAt: c.now()}
}
