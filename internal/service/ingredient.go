package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-picker/backend/internal/logger"
	"github.com/pageza/recipe-picker/backend/internal/models"
)

// IngredientService handles ingredient operations
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns every ingredient ordered by name
func (s *IngredientService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	if err := s.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// CreateIngredient stores an ingredient under a name no other ingredient has.
func (s *IngredientService) CreateIngredient(ctx context.Context, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidIngredient)
	}
	if len(name) > models.NameMaxLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidIngredient, models.NameMaxLength)
	}

	ingredient := models.Ingredient{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateIngredient, name)
		}
		return tx.Create(&ingredient).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("created ingredient", "name", ingredient.Name, "id", ingredient.ID)
	return &ingredient, nil
}

// DeleteIngredient removes an ingredient no recipe uses.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}

		var uses int64
		if err := tx.Table("recipe_ingredients").Where("ingredient_id = ?", id).Count(&uses).Error; err != nil {
			return err
		}
		if uses > 0 {
			return fmt.Errorf("%w: %s is used by %d recipe(s)", ErrIngredientInUse, ingredient.Name, uses)
		}
		return tx.Delete(&ingredient).Error
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("deleted ingredient", "id", id)
	return nil
}
