package core

// validation.go checks swimmer form input before it reaches the store.
//
// Validation collects every problem at once so the form can show a message
// next to each field. Rules:
//  1. Name: 2 to 50 characters after trimming
//  2. Gender: M or F
//  3. Birth date: required, YYYY-MM-DD, not in the future
//  4. Contact e-mail: optional, must be a valid address when present

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// BirthDateLayout is the wire format of SwimmerInput.BirthDate.
const BirthDateLayout = "2006-01-02"

const (
	minNameLength = 2
	maxNameLength = 50
)

// SwimmerInput is the editable part of a swimmer, as submitted by the form.
type SwimmerInput struct {
	Name                  string `json:"name"`
	GenderCode            string `json:"gender_code"`
	BirthDate             string `json:"birth_date"`
	TeamID                string `json:"team_id"`
	PhotoURL              string `json:"photo_url"`
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

// InputFromSwimmer returns the form input that reproduces s.
func InputFromSwimmer(s Swimmer) SwimmerInput {
	in := SwimmerInput{
		Name:                  s.Name,
		GenderCode:            string(s.GenderCode),
		TeamID:                s.TeamID,
		PhotoURL:              s.PhotoURL,
		ContactEmail:          s.ContactEmail,
		ContactPhone:          s.ContactPhone,
		EmergencyContactName:  s.EmergencyContactName,
		EmergencyContactPhone: s.EmergencyContactPhone,
	}
	if !s.BirthDate.IsZero() {
		in.BirthDate = s.BirthDate.Format(BirthDateLayout)
	}
	return in
}

// Normalize trims whitespace from every field and maps the "no team"
// choice to an empty team id.
func (in SwimmerInput) Normalize() SwimmerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.GenderCode = strings.ToUpper(strings.TrimSpace(in.GenderCode))
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.TeamID = strings.TrimSpace(in.TeamID)
	if in.TeamID == TeamNone {
		in.TeamID = ""
	}
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	in.EmergencyContactName = strings.TrimSpace(in.EmergencyContactName)
	in.EmergencyContactPhone = strings.TrimSpace(in.EmergencyContactPhone)
	return in
}

// BirthDateValue parses BirthDate.
func (in SwimmerInput) BirthDateValue() (time.Time, error) {
	t, err := time.Parse(BirthDateLayout, in.BirthDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", in.BirthDate, err)
	}
	return t, nil
}

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Form field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors is every problem found in one input.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// For returns the message for a field, or "".
func (es ValidationErrors) For(field string) string {
	for _, e := range es {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate checks a normalized input. now bounds the birth date. It
// returns nil or a ValidationErrors.
func (in SwimmerInput) Validate(now time.Time) error {
	var errs ValidationErrors

	switch n := utf8.RuneCountInString(in.Name); {
	case n < minNameLength:
		errs = append(errs, ValidationError{Field: "name", Value: in.Name, Message: fmt.Sprintf("name must be at least %d characters", minNameLength)})
	case n > maxNameLength:
		errs = append(errs, ValidationError{Field: "name", Value: in.Name, Message: fmt.Sprintf("name must be at most %d characters", maxNameLength)})
	}

	switch GenderCode(in.GenderCode) {
	case GenderMale, GenderFemale:
	default:
		errs = append(errs, ValidationError{Field: "gender_code", Value: in.GenderCode, Message: "select a gender"})
	}

	if in.BirthDate == "" {
		errs = append(errs, ValidationError{Field: "birth_date", Message: "select a birth date"})
	} else if bd, err := in.BirthDateValue(); err != nil {
		errs = append(errs, ValidationError{Field: "birth_date", Value: in.BirthDate, Message: "use the format YYYY-MM-DD"})
	} else if bd.After(now) {
		errs = append(errs, ValidationError{Field: "birth_date", Value: in.BirthDate, Message: "birth date cannot be in the future"})
	}

	if in.ContactEmail != "" {
		if addr, err := mail.ParseAddress(in.ContactEmail); err != nil || addr.Address != in.ContactEmail {
			errs = append(errs, ValidationError{Field: "contact_email", Value: in.ContactEmail, Message: "enter a valid e-mail address"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
