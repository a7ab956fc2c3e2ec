package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	baseURL string
}

func NewRecipeHandler(recipes service.IRecipeService, baseURL string) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, baseURL: baseURL}
}

// RegisterRoutes mounts the recipe routes. write runs before every handler
// that modifies recipes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, write ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", guarded(write, h.CreateRecipe)...)
		recipes.PUT("/:id", guarded(write, h.UpdateRecipe)...)
		recipes.DELETE("/:id", guarded(write, h.DeleteRecipe)...)
	}
}

// SearchRecipes returns the recipes matching every given criterion, ordered
// by name.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		invalidParam(c, err.Error())
		return
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Recipes: recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err.Error())
		return
	}
	recipe, err := req.toModel()
	if err != nil {
		invalidParam(c, err.Error())
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", h.baseURL+"/api/v1/recipes/"+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParam(c, err.Error())
		return
	}
	recipe, err := req.toModel()
	if err != nil {
		invalidParam(c, err.Error())
		return
	}

	if _, err := h.recipes.UpdateRecipe(c.Request.Context(), id, recipe); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, "invalid id "+c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}
