package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

var (
	mincedBeef     = models.Ingredient{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "Minced Beef"}
	cannedTomatoes = models.Ingredient{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "Canned Tomatoes"}
	onions         = models.Ingredient{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "Onions"}
	chickPeas      = models.Ingredient{ID: uuid.MustParse("00000000-0000-0000-0000-000000000004"), Name: "Chick Peas"}
	milk           = models.Ingredient{ID: uuid.MustParse("00000000-0000-0000-0000-000000000005"), Name: "Milk"}
)

func spaghettiBolognese() models.Recipe {
	return models.Recipe{
		ID:           uuid.MustParse("10000000-0000-0000-0000-000000000001"),
		Name:         "Spaghetti Bolognese",
		Instructions: "Boil salted water, brown the minced meat ..",
		Category:     models.CategoryMeat,
		Servings:     4,
		Ingredients:  []models.Ingredient{mincedBeef, cannedTomatoes, onions},
	}
}

func curry() models.Recipe {
	return models.Recipe{
		ID:           uuid.MustParse("10000000-0000-0000-0000-000000000002"),
		Name:         "Curry",
		Instructions: "Soak the peas in salted water, glaze the onions ...",
		Category:     models.CategoryVegan,
		Servings:     6,
		Ingredients:  []models.Ingredient{chickPeas, cannedTomatoes, onions},
	}
}

type fakeSource struct {
	recipes []models.Recipe
	err     error
	calls   int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.Recipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func names(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}
