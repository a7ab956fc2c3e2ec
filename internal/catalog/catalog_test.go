package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
)

type memoryStore struct {
	objects map[string][]byte
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

type staticSource struct {
	recipes []models.Recipe
	err     error
}

func (s staticSource) FetchAll(context.Context) ([]models.Recipe, error) {
	return s.recipes, s.err
}

func kitchen() []models.Recipe {
	onions := models.Ingredient{ID: uuid.New(), Name: "Onions"}
	peas := models.Ingredient{ID: uuid.New(), Name: "Chick Peas"}
	beef := models.Ingredient{ID: uuid.New(), Name: "Minced Beef"}
	return []models.Recipe{
		{ID: uuid.New(), Name: "Spaghetti Bolognese", Instructions: "Boil salted water", Category: models.CategoryMeat, Servings: 4, Ingredients: []models.Ingredient{beef, onions}},
		{ID: uuid.New(), Name: "Curry", Instructions: "Soak the peas", Category: models.CategoryVegan, Servings: 6, Ingredients: []models.Ingredient{peas, onions}},
	}
}

func TestPublishThenSearchSnapshot(t *testing.T) {
	store := newMemoryStore()
	c := New(store, "bucket", "catalog/recipes.json")
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	recipes := kitchen()
	ctx := context.Background()

	n, err := c.Publish(ctx, staticSource{recipes: recipes})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, string(store.objects["bucket/catalog/recipes.json"]), `"exported_at":"2024-01-02T03:04:05Z"`)

	onions := recipes[0].Ingredients[1].ID
	peas := recipes[1].Ingredients[0].ID
	found, err := search.Search(ctx, c, search.Criteria{
		Include: search.NewIDSet(onions),
		Exclude: search.NewIDSet(peas),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Spaghetti Bolognese", found[0].Name)
	assert.Equal(t, models.CategoryMeat, found[0].Category)
}

func TestFetchAllWithoutSnapshot(t *testing.T) {
	c := New(newMemoryStore(), "bucket", "missing.json")

	_, err := c.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestPublishEmptyCollection(t *testing.T) {
	c := New(newMemoryStore(), "bucket", "k")

	n, err := c.Publish(context.Background(), staticSource{})
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestPublishPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(newMemoryStore(), "b", "k").Publish(context.Background(), staticSource{err: boom})
	assert.ErrorIs(t, err, boom)

	store := newMemoryStore()
	store.putErr = boom
	_, err = New(store, "b", "k").Publish(context.Background(), staticSource{recipes: kitchen()})
	assert.ErrorIs(t, err, boom)
}
