package search

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrOverlappingIngredients matches any *OverlapError.
var ErrOverlappingIngredients = errors.New("include and exclude ingredient sets overlap")

// OverlapError reports an ingredient present in both the include and the
// exclude set of a search. Name is filled in by callers that can resolve it.
type OverlapError struct {
	IngredientID uuid.UUID
	Name         string
}

func (e *OverlapError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ingredient '%s' (%s) is in both include and exclude sets", e.Name, e.IngredientID)
	}
	return fmt.Sprintf("ingredient %s is in both include and exclude sets", e.IngredientID)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingIngredients
}

// ValidateDisjoint fails with an *OverlapError when include and exclude share
// a member. The smallest shared ID is reported.
func ValidateDisjoint(include, exclude IDSet) error {
	small, large := include, exclude
	if len(large) < len(small) {
		small, large = large, small
	}
	for _, id := range small.Sorted() {
		if large.Contains(id) {
			return &OverlapError{IngredientID: id}
		}
	}
	return nil
}
