package catalog

import "github.com/okian/coursebook/internal/domain/model"

// Source is the read-only course repository the catalog works over.
type Source interface {
	// Category returns the stored sequence of a stored key, an empty sequence
	// for ALL, or model.ErrUnknownCategory.
	Category(c model.Category) ([]model.Course, error)

	// All returns every stored course once, first-seen-wins across stored
	// categories in declared order.
	All() []model.Course

	// SourceOf returns the first stored category, in declared order, whose
	// sequence contains id.
	SourceOf(id int) (model.Category, bool)
}
