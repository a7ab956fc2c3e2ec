package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/database"
	"github.com/pageza/recipe-picker/backend/internal/search"
	"github.com/pageza/recipe-picker/backend/internal/service"
	"github.com/pageza/recipe-picker/backend/internal/testhelpers"
)

// seededDatabase writes the fixture kitchen to a SQLite file.
func seededDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.db")

	db, err := database.New(&config.Config{DBDriver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	testhelpers.SeedKitchen(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchByIngredientNames(t *testing.T) {
	path := seededDatabase(t)

	out, err := runCLI(t, "search", "--db-driver", "sqlite", "--sqlite-path", path,
		"--include", "onions", "--exclude", "Chick Peas", "-o", "json")
	require.NoError(t, err)

	var views []recipeView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Spaghetti Bolognese", views[0].Name)
	assert.ElementsMatch(t, []string{"Minced Beef", "Canned Tomatoes", "Onions"}, views[0].Ingredients)
}

func TestSearchTableOutput(t *testing.T) {
	path := seededDatabase(t)

	out, err := runCLI(t, "search", "--db-driver", "sqlite", "--sqlite-path", path, "--text", "SALTED")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Curry")
	assert.Contains(t, out, "Spaghetti Bolognese")
	assert.Less(t, bytes.Index([]byte(out), []byte("Curry")), bytes.Index([]byte(out), []byte("Spaghetti")))
}

func TestSearchRejectsOverlap(t *testing.T) {
	path := seededDatabase(t)

	_, err := runCLI(t, "search", "--db-driver", "sqlite", "--sqlite-path", path,
		"--include", "Onions", "--exclude", "onions")
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrOverlappingIngredients)
	assert.Contains(t, err.Error(), "Onions")
}

func TestSearchRejectsUnknownIngredientName(t *testing.T) {
	path := seededDatabase(t)

	_, err := runCLI(t, "search", "--db-driver", "sqlite", "--sqlite-path", path, "--include", "Truffle")
	assert.ErrorIs(t, err, service.ErrUnknownIngredient)
}

func TestSearchRejectsUnknownSource(t *testing.T) {
	_, err := runCLI(t, "search", "--source", "ftp")
	assert.ErrorContains(t, err, "unknown source")
}

func TestWriteRecipesYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecipes(&buf, formatYAML, nil))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, writeRecipes(&buf, "xml", nil))
}
