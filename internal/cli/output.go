package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// recipeView is the printed shape of a recipe.
type recipeView struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	Servings     int      `json:"servings" yaml:"servings"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
}

func toViews(recipes []models.Recipe) []recipeView {
	views := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		v := recipeView{
			ID:           r.ID.String(),
			Name:         r.Name,
			Category:     string(r.Category),
			Servings:     r.Servings,
			Ingredients:  make([]string, 0, len(r.Ingredients)),
			Instructions: r.Instructions,
		}
		for _, ing := range r.Ingredients {
			v.Ingredients = append(v.Ingredients, ing.Name)
		}
		views = append(views, v)
	}
	return views
}

func writeRecipes(w io.Writer, format string, recipes []models.Recipe) error {
	views := toViews(recipes)
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(views)
	case formatTable, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCATEGORY\tSERVINGS\tINGREDIENTS")
		for _, v := range views {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", v.Name, v.Category, v.Servings, strings.Join(v.Ingredients, ", "))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
