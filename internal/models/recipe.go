package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Limits shared between the domain and the api.
const (
	NameMaxLength         = 255
	InstructionsMaxLength = 2048
	MaxServings           = 16
)

// Category classifies a recipe. CategoryAll is a search wildcard and is never
// stored on a recipe.
type Category string

const (
	CategoryAll        Category = "ALL"
	CategoryMeat       Category = "MEAT"
	CategoryFish       Category = "FISH"
	CategoryVegetarian Category = "VEGETARIAN"
	CategoryVegan      Category = "VEGAN"
)

// Categories lists every category, the wildcard first.
var Categories = []Category{CategoryAll, CategoryMeat, CategoryFish, CategoryVegetarian, CategoryVegan}

// ParseCategory parses a category name case-insensitively. An empty string
// yields CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAll, nil
	}
	c := Category(strings.ToUpper(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown recipe category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsWildcard reports whether c matches any category in a search.
func (c Category) IsWildcard() bool {
	return c == "" || c == CategoryAll
}

// Ingredient is identified by its ID only; the name is informational.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate assigns an ID when none was supplied.
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i Ingredient) String() string {
	return fmt.Sprintf("Ingredient id: %s name: '%s'", i.ID, i.Name)
}

type Recipe struct {
	ID           uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Name         string       `gorm:"size:255;not null;index" json:"name"`
	Instructions string       `gorm:"size:2048;not null" json:"instructions"`
	Category     Category     `gorm:"size:20;not null" json:"category"`
	Servings     int          `gorm:"not null" json:"servings"`
	Ingredients  []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

// BeforeCreate assigns an ID when none was supplied.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// HasIngredient reports whether the recipe uses the ingredient with the given ID.
func (r *Recipe) HasIngredient(id uuid.UUID) bool {
	for _, ing := range r.Ingredients {
		if ing.ID == id {
			return true
		}
	}
	return false
}

// IngredientIDs returns the distinct ingredient IDs in the order they appear.
func (r *Recipe) IngredientIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Ingredients))
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if _, ok := seen[ing.ID]; ok {
			continue
		}
		seen[ing.ID] = struct{}{}
		ids = append(ids, ing.ID)
	}
	return ids
}

// Validate checks the invariants a stored recipe must hold.
func (r *Recipe) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("name must not be blank")
	case len(r.Name) > NameMaxLength:
		return fmt.Errorf("name exceeds %d characters", NameMaxLength)
	case strings.TrimSpace(r.Instructions) == "":
		return fmt.Errorf("instructions must not be blank")
	case len(r.Instructions) > InstructionsMaxLength:
		return fmt.Errorf("instructions exceed %d characters", InstructionsMaxLength)
	case !r.Category.Valid() || r.Category == CategoryAll:
		return fmt.Errorf("category %q cannot be stored on a recipe", r.Category)
	case r.Servings < 1 || r.Servings > MaxServings:
		return fmt.Errorf("servings must be between 1 and %d", MaxServings)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("a recipe needs at least one ingredient")
	}
	return nil
}
