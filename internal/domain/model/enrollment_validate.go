package model

import (
	"net/mail"
	"strings"
)

// Normalize trims surrounding whitespace from every text field.
func (e Enrollment) Normalize() Enrollment {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Course = strings.TrimSpace(e.Course)
	e.PreviousEducation = strings.TrimSpace(e.PreviousEducation)
	e.Message = strings.TrimSpace(e.Message)
	e.HearAboutUs = strings.TrimSpace(e.HearAboutUs)
	return e
}

// Validate reports every missing required field, a malformed email and an
// unaccepted terms box in one *ValidationError.
func (e Enrollment) Validate() error {
	var fields []FieldError
	required := []struct {
		name  string
		value string
	}{
		{"firstName", e.FirstName},
		{"lastName", e.LastName},
		{"email", e.Email},
		{"phone", e.Phone},
		{"course", e.Course},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fields = append(fields, FieldError{Field: r.name, Message: "is required"})
		}
	}
	if addr := strings.TrimSpace(e.Email); addr != "" {
		if _, err := mail.ParseAddress(addr); err != nil {
			fields = append(fields, FieldError{Field: "email", Message: "is not a valid address"})
		}
	}
	if !e.Terms {
		fields = append(fields, FieldError{Field: "terms", Message: "Please accept the terms and conditions to continue."})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
