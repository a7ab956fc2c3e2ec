package service

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrIngredientInUse     = errors.New("ingredient is used by a recipe")
	ErrDuplicateIngredient = errors.New("ingredient already exists")
	ErrInvalidRecipe       = errors.New("invalid recipe")
	ErrInvalidIngredient   = errors.New("invalid ingredient")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
