package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

// Kitchen holds the stored fixture ingredients and recipes.
type Kitchen struct {
	MincedBeef     models.Ingredient
	CannedTomatoes models.Ingredient
	Onions         models.Ingredient
	ChickPeas      models.Ingredient
	Milk           models.Ingredient
	Flour          models.Ingredient

	SpaghettiBolognese models.Recipe
	Curry              models.Recipe
}

func SpaghettiBolognese(ingredients ...models.Ingredient) models.Recipe {
	return models.Recipe{
		Name:         "Spaghetti Bolognese",
		Instructions: "Boil salted water, brown the minced meat ..",
		Category:     models.CategoryMeat,
		Servings:     4,
		Ingredients:  ingredients,
	}
}

func Curry(ingredients ...models.Ingredient) models.Recipe {
	return models.Recipe{
		Name:         "Curry",
		Instructions: "Soak the peas in salted water, glaze the onions ...",
		Category:     models.CategoryVegan,
		Servings:     6,
		Ingredients:  ingredients,
	}
}

// SeedKitchen stores six ingredients plus the bolognese and curry recipes.
func SeedKitchen(t *testing.T, db *gorm.DB) *Kitchen {
	t.Helper()

	k := &Kitchen{
		MincedBeef:     models.Ingredient{Name: "Minced Beef"},
		CannedTomatoes: models.Ingredient{Name: "Canned Tomatoes"},
		Onions:         models.Ingredient{Name: "Onions"},
		ChickPeas:      models.Ingredient{Name: "Chick Peas"},
		Milk:           models.Ingredient{Name: "Milk"},
		Flour:          models.Ingredient{Name: "Wheat Flour"},
	}
	for _, ing := range []*models.Ingredient{&k.MincedBeef, &k.CannedTomatoes, &k.Onions, &k.ChickPeas, &k.Milk, &k.Flour} {
		if err := db.Create(ing).Error; err != nil {
			t.Fatalf("failed to seed ingredient %s: %v", ing.Name, err)
		}
	}

	k.SpaghettiBolognese = SpaghettiBolognese(k.MincedBeef, k.CannedTomatoes, k.Onions)
	k.Curry = Curry(k.ChickPeas, k.CannedTomatoes, k.Onions)
	for _, r := range []*models.Recipe{&k.SpaghettiBolognese, &k.Curry} {
		if err := db.Omit("Ingredients.*").Create(r).Error; err != nil {
			t.Fatalf("failed to seed recipe %s: %v", r.Name, err)
		}
	}
	return k
}
