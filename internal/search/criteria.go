// Package search filters a recipe collection by an optional combination of
// text, category, servings and required or forbidden ingredients.
package search

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

// IDSet is a set of ingredient IDs.
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from the given IDs, dropping duplicates.
func NewIDSet(ids ...uuid.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending byte order.
func (s IDSet) Sorted() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

// Criteria holds the optional parameters of one search. The zero value of
// each field leaves that dimension unconstrained.
type Criteria struct {
	Text     string
	Category models.Category
	Servings int
	Include  IDSet
	Exclude  IDSet
}
