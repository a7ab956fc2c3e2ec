package search

import (
	"context"
	"sort"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

// RecipeSource returns a consistent snapshot of every stored recipe. No
// ordering is required.
type RecipeSource interface {
	FetchAll(ctx context.Context) ([]models.Recipe, error)
}

// Search validates c, filters the snapshot returned by src and orders the
// matches by name. Ties keep the source's order. The result is never nil.
func Search(ctx context.Context, src RecipeSource, c Criteria) ([]models.Recipe, error) {
	if err := ValidateDisjoint(c.Include, c.Exclude); err != nil {
		return nil, err
	}
	match := Build(c)

	all, err := src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]models.Recipe, 0, len(all))
	for i := range all {
		if match(&all[i]) {
			matches = append(matches, all[i])
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	return matches, nil
}
