package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-picker/backend/internal/catalog"
	"github.com/pageza/recipe-picker/backend/internal/database"
	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
	"github.com/pageza/recipe-picker/backend/internal/service"
)

const (
	sourceDB = "db"
	sourceS3 = "s3"
)

type searchOptions struct {
	text     string
	category string
	servings int
	include  []string
	exclude  []string
	source   string
	output   string
}

func newSearchCommand(v *viper.Viper) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recipes in the database or in the published catalog",
		Long: `Search recipes by text, category, servings and ingredients.
Ingredients may be given by ID or by exact name.`,
		Example: `  recipectl search --include Onions --exclude "Chick Peas"
  recipectl search --source s3 --category vegan --servings 6 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "text contained in the name or instructions")
	f.StringVar(&opts.category, "category", "", "category (ALL, MEAT, FISH, VEGETARIAN, VEGAN)")
	f.IntVar(&opts.servings, "servings", 0, "exact number of servings (0 for any)")
	f.StringSliceVar(&opts.include, "include", nil, "ingredients every result must contain")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "ingredients no result may contain")
	f.StringVar(&opts.source, "source", sourceDB, "recipe source (db, s3)")
	f.StringVarP(&opts.output, "output", "o", formatTable, "output format (table, json, yaml)")
	return cmd
}

func runSearch(cmd *cobra.Command, v *viper.Viper, opts *searchOptions) error {
	ctx := cmd.Context()

	if opts.servings < 0 || opts.servings > models.MaxServings {
		return fmt.Errorf("servings must be between 0 and %d", models.MaxServings)
	}
	category, err := models.ParseCategory(opts.category)
	if err != nil {
		return err
	}

	src, closeFn, err := openSource(ctx, v, opts.source)
	if err != nil {
		return err
	}
	defer closeFn()

	all, err := src.FetchAll(ctx)
	if err != nil {
		return err
	}
	known := indexIngredients(all)

	criteria := search.Criteria{Text: opts.text, Category: category, Servings: opts.servings}
	if criteria.Include, err = resolveIngredients(opts.include, known); err != nil {
		return err
	}
	if criteria.Exclude, err = resolveIngredients(opts.exclude, known); err != nil {
		return err
	}

	results, err := search.Search(ctx, snapshot(all), criteria)
	if err != nil {
		var overlap *search.OverlapError
		if errors.As(err, &overlap) {
			overlap.Name = known.byID[overlap.IngredientID].Name
		}
		return err
	}
	return writeRecipes(cmd.OutOrStdout(), opts.output, results)
}

func openSource(ctx context.Context, v *viper.Viper, source string) (search.RecipeSource, func(), error) {
	switch source {
	case sourceDB:
		db, err := database.New(databaseConfig(v))
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return service.NewRecipeService(db, nil, nil), closeFn, nil
	case sourceS3:
		cfg, err := s3Config(ctx, v)
		if err != nil {
			return nil, nil, err
		}
		return catalog.FromConfig(cfg), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q, expected %s or %s", source, sourceDB, sourceS3)
	}
}

// snapshot serves an already loaded recipe collection.
type snapshot []models.Recipe

func (s snapshot) FetchAll(context.Context) ([]models.Recipe, error) {
	return s, nil
}

type ingredientIndex struct {
	byID   map[uuid.UUID]models.Ingredient
	byName map[string]uuid.UUID
}

// indexIngredients collects the ingredients used by recipes.
func indexIngredients(recipes []models.Recipe) ingredientIndex {
	idx := ingredientIndex{
		byID:   map[uuid.UUID]models.Ingredient{},
		byName: map[string]uuid.UUID{},
	}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			idx.byID[ing.ID] = ing
			idx.byName[strings.ToLower(ing.Name)] = ing.ID
		}
	}
	return idx
}

// resolveIngredients turns IDs or names into an ID set. Names must belong
// to an ingredient used by some recipe.
func resolveIngredients(refs []string, known ingredientIndex) (search.IDSet, error) {
	set := search.NewIDSet()
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if id, err := uuid.Parse(ref); err == nil {
			set[id] = struct{}{}
			continue
		}
		id, ok := known.byName[strings.ToLower(ref)]
		if !ok {
			return nil, fmt.Errorf("%w: no recipe uses an ingredient named %q", service.ErrUnknownIngredient, ref)
		}
		set[id] = struct{}{}
	}
	return set, nil
}
