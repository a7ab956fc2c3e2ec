package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/service"
)

type IngredientHandler struct {
	ingredients service.IIngredientService
	baseURL     string
}

func NewIngredientHandler(ingredients service.IIngredientService, baseURL string) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, baseURL: baseURL}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup, write ...gin.HandlerFunc) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", guarded(write, h.CreateIngredient)...)
		ingredients.DELETE("/:id", guarded(write, h.DeleteIngredient)...)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ingredient, err := h.ingredients.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err.Error())
		return
	}

	created, err := h.ingredients.CreateIngredient(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", h.baseURL+"/api/v1/ingredients/"+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ingredients.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
