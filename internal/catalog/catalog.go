// Package catalog publishes the recipe collection as a JSON snapshot in S3
// and serves searches from such a snapshot.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
)

// ErrNoSnapshot is returned when the bucket holds no catalog object.
var ErrNoSnapshot = errors.New("no catalog snapshot published")

// ObjectStore is the part of the S3 client the catalog needs.
type ObjectStore interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Snapshot is the stored document.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Recipes    []models.Recipe `json:"recipes"`
}

// Catalog reads and writes one snapshot object. It implements
// search.RecipeSource.
type Catalog struct {
	store  ObjectStore
	bucket string
	key    string
	now    func() time.Time
}

func New(store ObjectStore, bucket, key string) *Catalog {
	return &Catalog{store: store, bucket: bucket, key: key, now: time.Now}
}

// FromConfig builds a Catalog on the configured S3 client and location.
func FromConfig(cfg *config.S3Config) *Catalog {
	return New(cfg.Client, cfg.BucketName, cfg.CatalogKey)
}

func (c *Catalog) Key() string {
	return c.key
}

// Publish writes every recipe of src to the snapshot object and returns how
// many were written.
func (c *Catalog) Publish(ctx context.Context, src search.RecipeSource) (int, error) {
	recipes, err := src.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading recipes for export: %w", err)
	}

	body, err := json.Marshal(Snapshot{ExportedAt: c.now().UTC(), Recipes: recipes})
	if err != nil {
		return 0, fmt.Errorf("encoding catalog: %w", err)
	}

	_, err = c.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(c.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return 0, fmt.Errorf("uploading catalog to s3://%s/%s: %w", c.bucket, c.key, err)
	}

	slog.Info("published recipe catalog", "bucket", c.bucket, "key", c.key, "recipes", len(recipes))
	return len(recipes), nil
}

// FetchAll returns the recipes of the published snapshot.
func (c *Catalog) FetchAll(ctx context.Context) ([]models.Recipe, error) {
	out, err := c.store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("downloading catalog: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if snapshot.Recipes == nil {
		snapshot.Recipes = []models.Recipe{}
	}
	return snapshot.Recipes, nil
}
