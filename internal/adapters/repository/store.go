// Package repository holds the course catalog in memory and loads it from a
// structured payload.
package repository

import (
	"github.com/okian/coursebook/internal/domain/catalog"
	"github.com/okian/coursebook/internal/domain/model"
)

// Payload maps stored category keys to their course sequences.
type Payload map[model.Category][]model.Course

// Store provides read access to the catalog.
type Store interface {
	catalog.Source

	// Count returns the number of distinct course ids.
	Count() int

	// CategoryCount returns the stored length of c.
	CategoryCount(c model.Category) int
}
