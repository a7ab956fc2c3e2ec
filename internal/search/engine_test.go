package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

func TestSearchScenarios(t *testing.T) {
	src := &fakeSource{recipes: []models.Recipe{spaghettiBolognese(), curry()}}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria returns all ordered by name", Criteria{Category: models.CategoryAll}, []string{"Curry", "Spaghetti Bolognese"}},
		{"servings", Criteria{Servings: 6}, []string{"Curry"}},
		{"category", Criteria{Category: models.CategoryMeat}, []string{"Spaghetti Bolognese"}},
		{"text in instructions", Criteria{Text: "boil"}, []string{"Spaghetti Bolognese"}},
		{"text in name", Criteria{Text: "bolognese"}, []string{"Spaghetti Bolognese"}},
		{"text glaze", Criteria{Text: "glaze"}, []string{"Curry"}},
		{"include all", Criteria{Include: NewIDSet(mincedBeef.ID, cannedTomatoes.ID)}, []string{"Spaghetti Bolognese"}},
		{"include without match", Criteria{Include: NewIDSet(mincedBeef.ID, chickPeas.ID)}, []string{}},
		{"exclude one", Criteria{Exclude: NewIDSet(mincedBeef.ID)}, []string{"Curry"}},
		{"exclude is or", Criteria{Exclude: NewIDSet(mincedBeef.ID, chickPeas.ID)}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Search(context.Background(), src, tt.criteria)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearchOverlapDoesNotTouchStore(t *testing.T) {
	src := &fakeSource{recipes: []models.Recipe{spaghettiBolognese(), curry()}}

	got, err := Search(context.Background(), src, Criteria{
		Include: NewIDSet(onions.ID),
		Exclude: NewIDSet(onions.ID),
	})

	assert.Nil(t, got)
	var overlap *OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, onions.ID, overlap.IngredientID)
	assert.Equal(t, 0, src.calls)
}

func TestSearchPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	src := &fakeSource{err: storeErr}

	_, err := Search(context.Background(), src, Criteria{})
	assert.ErrorIs(t, err, storeErr)
}

func TestSearchIsIdempotent(t *testing.T) {
	src := &fakeSource{recipes: []models.Recipe{curry(), spaghettiBolognese(), curry()}}
	c := Criteria{Include: NewIDSet(onions.ID)}

	first, err := Search(context.Background(), src, c)
	require.NoError(t, err)
	second, err := Search(context.Background(), src, c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearchKeepsSourceOrderForEqualNames(t *testing.T) {
	a := curry()
	a.ID = uuid.MustParse("20000000-0000-0000-0000-00000000000a")
	b := curry()
	b.ID = uuid.MustParse("20000000-0000-0000-0000-00000000000b")
	src := &fakeSource{recipes: []models.Recipe{spaghettiBolognese(), b, a}}

	got, err := Search(context.Background(), src, Criteria{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
	assert.Equal(t, "Spaghetti Bolognese", got[2].Name)
}

func TestSearchOrdersByOrdinalComparison(t *testing.T) {
	lower := curry()
	lower.Name = "apple pie"
	upper := curry()
	upper.Name = "Zucchini bake"
	src := &fakeSource{recipes: []models.Recipe{lower, upper}}

	got, err := Search(context.Background(), src, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zucchini bake", "apple pie"}, names(got))
}

func TestSearchOnEmptyStore(t *testing.T) {
	got, err := Search(context.Background(), &fakeSource{}, Criteria{Text: "anything"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
