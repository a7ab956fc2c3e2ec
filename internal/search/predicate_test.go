package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

func TestAndWithoutClausesAcceptsEverything(t *testing.T) {
	r := curry()
	assert.True(t, And()(&r))
	assert.True(t, Build(Criteria{})(&r))
	assert.True(t, Build(Criteria{Text: "   ", Category: models.CategoryAll})(&r))
}

func TestTextContainsIgnoresCase(t *testing.T) {
	bolognese := spaghettiBolognese()
	c := curry()

	assert.True(t, TextContains("BOIL")(&bolognese), "matches instructions")
	assert.True(t, TextContains("bolognese")(&bolognese), "matches name")
	assert.False(t, TextContains("glaze")(&bolognese))
	assert.True(t, TextContains("glaze")(&c))
}

func TestTextContainsFoldsUnicode(t *testing.T) {
	r := models.Recipe{Name: "Käsespätzle", Instructions: "Mit WEISSBIER ablöschen"}

	assert.True(t, TextContains("KÄSESPÄTZLE")(&r))
	assert.True(t, TextContains("weißbier")(&r))
	assert.False(t, TextContains("rotwein")(&r))
}

func TestCategoryAndServingsClauses(t *testing.T) {
	bolognese := spaghettiBolognese()

	assert.True(t, Build(Criteria{Category: models.CategoryMeat})(&bolognese))
	assert.False(t, Build(Criteria{Category: models.CategoryVegan})(&bolognese))
	assert.True(t, Build(Criteria{Servings: 4})(&bolognese))
	assert.False(t, Build(Criteria{Servings: 6})(&bolognese))
}

func TestIncludeRequiresEveryIngredient(t *testing.T) {
	bolognese := spaghettiBolognese()

	assert.True(t, ContainsAll(NewIDSet(mincedBeef.ID, cannedTomatoes.ID))(&bolognese))
	assert.False(t, ContainsAll(NewIDSet(mincedBeef.ID, chickPeas.ID))(&bolognese))
	assert.True(t, ContainsAll(NewIDSet())(&bolognese))
}

func TestExcludeRejectsAnySharedIngredient(t *testing.T) {
	bolognese := spaghettiBolognese()
	c := curry()
	p := Build(Criteria{Exclude: NewIDSet(mincedBeef.ID, milk.ID)})

	assert.False(t, p(&bolognese))
	assert.True(t, p(&c))
}

func TestBuildCombinesClauses(t *testing.T) {
	bolognese := spaghettiBolognese()
	c := curry()
	p := Build(Criteria{
		Text:     "salted",
		Category: models.CategoryVegan,
		Servings: 6,
		Include:  NewIDSet(onions.ID),
		Exclude:  NewIDSet(mincedBeef.ID),
	})

	assert.True(t, p(&c))
	assert.False(t, p(&bolognese))
}
