package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

// Predicate decides whether a recipe belongs in the result.
type Predicate func(r *models.Recipe) bool

// And is the conjunction of ps. With no arguments it accepts every recipe.
func And(ps ...Predicate) Predicate {
	return func(r *models.Recipe) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(r *models.Recipe) bool {
		return !p(r)
	}
}

// TextContains matches recipes whose name or instructions contain text,
// ignoring case.
func TextContains(text string) Predicate {
	needle := Fold(text)
	return func(r *models.Recipe) bool {
		return strings.Contains(Fold(r.Name), needle) ||
			strings.Contains(Fold(r.Instructions), needle)
	}
}

// Fold returns the case folded form of s used for text matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

func InCategory(c models.Category) Predicate {
	return func(r *models.Recipe) bool {
		return r.Category == c
	}
}

func ServesExactly(n int) Predicate {
	return func(r *models.Recipe) bool {
		return r.Servings == n
	}
}

// ContainsAll matches recipes that use every ingredient in ids.
func ContainsAll(ids IDSet) Predicate {
	return func(r *models.Recipe) bool {
		have := NewIDSet(r.IngredientIDs()...)
		for id := range ids {
			if !have.Contains(id) {
				return false
			}
		}
		return true
	}
}

// ContainsAny matches recipes that use at least one ingredient in ids.
func ContainsAny(ids IDSet) Predicate {
	return func(r *models.Recipe) bool {
		for _, ing := range r.Ingredients {
			if ids.Contains(ing.ID) {
				return true
			}
		}
		return false
	}
}

// Build combines the clauses for every criterion that is set.
func Build(c Criteria) Predicate {
	var clauses []Predicate
	if strings.TrimSpace(c.Text) != "" {
		clauses = append(clauses, TextContains(c.Text))
	}
	if !c.Category.IsWildcard() {
		clauses = append(clauses, InCategory(c.Category))
	}
	if c.Servings > 0 {
		clauses = append(clauses, ServesExactly(c.Servings))
	}
	if len(c.Include) > 0 {
		clauses = append(clauses, ContainsAll(c.Include))
	}
	if len(c.Exclude) > 0 {
		clauses = append(clauses, Not(ContainsAny(c.Exclude)))
	}
	return And(clauses...)
}
