// Package model contains domain models passed between layers.
package model

// Enrollment is a submitted enrollment form.
type Enrollment struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Course            string `json:"course"`
	PreviousEducation string `json:"previousEducation,omitempty"`
	Message           string `json:"message,omitempty"`
	HearAboutUs       string `json:"hearAboutUs,omitempty"`
	Terms             bool   `json:"terms"`
}

// Notification is what the notify capability receives for an accepted enrollment.
type Notification struct {
	Reference  string     `json:"reference"`
	Subject    string     `json:"subject"`
	Recipient  string     `json:"recipient,omitempty"`
	Sender     string     `json:"sender,omitempty"`
	Enrollment Enrollment `json:"enrollment"`

	// Set when the course title matches a catalog entry.
	CourseSlug   string `json:"courseSlug,omitempty"`
	AwardingBody string `json:"awardingBody,omitempty"`
}

// Receipt acknowledges an enrollment submission.
type Receipt struct {
	Reference string `json:"reference"`
	Duplicate bool   `json:"duplicate"`
	Queued    bool   `json:"queued"`
}
