package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/database"
	"github.com/pageza/recipe-picker/backend/internal/logger"
	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
	"github.com/pageza/recipe-picker/backend/internal/service"
)

//go:embed recipes.yaml
var defaultFixture []byte

// Fixture is the YAML seed document. Recipes reference ingredients by name.
type Fixture struct {
	Ingredients []string        `yaml:"ingredients"`
	Recipes     []RecipeFixture `yaml:"recipes"`
}

type RecipeFixture struct {
	Name         string   `yaml:"name"`
	Instructions string   `yaml:"instructions"`
	Category     string   `yaml:"category"`
	Servings     int      `yaml:"servings"`
	Ingredients  []string `yaml:"ingredients"`
}

func main() {
	file := flag.String("file", "", "YAML fixture to load (defaults to the built-in kitchen)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	data := defaultFixture
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			slog.Error("failed to read fixture", "file", *file, "error", err)
			os.Exit(1)
		}
	}
	fixture, err := parseFixture(data)
	if err != nil {
		slog.Error("failed to parse fixture", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	seeder := &seeder{
		ingredients: service.NewIngredientService(db),
		recipes:     service.NewRecipeService(db, nil, nil),
	}
	ingredients, recipes, err := seeder.Seed(context.Background(), fixture)
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seeding complete", "ingredients_created", ingredients, "recipes_created", recipes)
}

func parseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

type seeder struct {
	ingredients *service.IngredientService
	recipes     *service.RecipeService
}

// Seed creates the missing ingredients and recipes of f. Existing entries,
// matched by name, are left untouched.
func (s *seeder) Seed(ctx context.Context, f *Fixture) (int, int, error) {
	byName, err := s.ingredientsByName(ctx)
	if err != nil {
		return 0, 0, err
	}

	createdIngredients := 0
	for _, name := range f.Ingredients {
		if _, ok := byName[name]; ok {
			continue
		}
		ing, err := s.ingredients.CreateIngredient(ctx, name)
		if err != nil {
			return createdIngredients, 0, fmt.Errorf("creating ingredient %s: %w", name, err)
		}
		byName[ing.Name] = *ing
		createdIngredients++
	}

	createdRecipes := 0
	for _, rf := range f.Recipes {
		exists, err := s.recipeExists(ctx, rf.Name)
		if err != nil {
			return createdIngredients, createdRecipes, err
		}
		if exists {
			slog.Debug("recipe already present", "name", rf.Name)
			continue
		}

		recipe, err := rf.toModel(byName)
		if err != nil {
			return createdIngredients, createdRecipes, err
		}
		if _, err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
			return createdIngredients, createdRecipes, fmt.Errorf("creating recipe %s: %w", rf.Name, err)
		}
		createdRecipes++
	}
	return createdIngredients, createdRecipes, nil
}

func (s *seeder) ingredientsByName(ctx context.Context) (map[string]models.Ingredient, error) {
	all, err := s.ingredients.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Ingredient, len(all))
	for _, ing := range all {
		byName[ing.Name] = ing
	}
	return byName, nil
}

func (s *seeder) recipeExists(ctx context.Context, name string) (bool, error) {
	matches, err := s.recipes.SearchRecipes(ctx, search.Criteria{Text: name})
	if err != nil {
		return false, err
	}
	for _, r := range matches {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (rf RecipeFixture) toModel(ingredients map[string]models.Ingredient) (*models.Recipe, error) {
	category, err := models.ParseCategory(rf.Category)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", rf.Name, err)
	}
	recipe := &models.Recipe{
		Name:         rf.Name,
		Instructions: rf.Instructions,
		Category:     category,
		Servings:     rf.Servings,
	}
	for _, name := range rf.Ingredients {
		ing, ok := ingredients[name]
		if !ok {
			return nil, fmt.Errorf("recipe %s: %w: no ingredient named %q", rf.Name, service.ErrUnknownIngredient, name)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	return recipe, nil
}
