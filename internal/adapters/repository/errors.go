package repository

import "errors"

// Sentinel kinds for catalog load errors.
var (
	ErrLoadCatalog    = errors.New("load catalog")
	ErrInvalidCourse  = errors.New("invalid course")
	ErrIDConflict     = errors.New("course id conflict")
	ErrSlugCollision  = errors.New("slug collision")
	ErrInvalidPayload = errors.New("invalid catalog payload")
)
