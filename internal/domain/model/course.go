// Package model contains domain models passed between layers.
package model

// Course is one catalog entry. Records are immutable once the catalog is loaded.
// The same ID may be listed under several categories (cross-listing).
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"` // carries awarding-body metadata by substring
}

// AnnotatedCourse is a course decorated for a particular category view.
type AnnotatedCourse struct {
	Course
	DisplayTitle string `json:"display_title"`
	Badge        string `json:"badge"`
	// Source is the stored category the annotation was computed from.
	Source Category `json:"source"`
}

// CourseDetail is what the enrollment page shows for one course.
type CourseDetail struct {
	Course
	Slug         string   `json:"slug"`
	AwardingBody string   `json:"awarding_body,omitempty"`
	Area         string   `json:"area"`
	Source       Category `json:"source"`
}
