package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
)

// parseCriteria reads search criteria from the query string. Missing
// parameters leave their criterion unconstrained.
func parseCriteria(c *gin.Context) (search.Criteria, error) {
	criteria := search.Criteria{Text: c.Query("text")}

	category, err := models.ParseCategory(firstQuery(c, "category", "recipeCategory"))
	if err != nil {
		return criteria, err
	}
	criteria.Category = category

	if raw := firstQuery(c, "servings", "nofServings"); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil || servings < 0 || servings > models.MaxServings {
			return criteria, fmt.Errorf("servings must be a number between 0 and %d", models.MaxServings)
		}
		criteria.Servings = servings
	}

	if criteria.Include, err = parseIDSet(c.QueryArray("includeIngredientIds")); err != nil {
		return criteria, fmt.Errorf("includeIngredientIds: %w", err)
	}
	if criteria.Exclude, err = parseIDSet(c.QueryArray("excludeIngredientIds")); err != nil {
		return criteria, fmt.Errorf("excludeIngredientIds: %w", err)
	}
	return criteria, nil
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			return v
		}
	}
	return ""
}

// parseIDSet accepts repeated parameters as well as comma separated lists.
func parseIDSet(values []string) (search.IDSet, error) {
	set := search.NewIDSet()
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("invalid ingredient id %q", part)
			}
			set[id] = struct{}{}
		}
	}
	return set, nil
}
