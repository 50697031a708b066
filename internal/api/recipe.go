package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenspoon/backend/internal/service"
	"github.com/greenspoon/backend/internal/validation"
)

// RecipeHandler serves the recipe collection.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/categories/:category", h.Reference)
		recipes.GET("/:id", h.Get)
		recipes.POST("", auth, h.Create)
		recipes.PUT("/:id", auth, h.Update)
		recipes.DELETE("/:id", auth, h.Delete)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	list, err := h.recipes.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) Reference(c *gin.Context) {
	items, err := h.recipes.Reference(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	payload, err := jsonPart(c, "recipe")
	if err != nil {
		c.Error(err)
		return
	}
	input, err := validation.DecodeRecipeInput(payload)
	if err != nil {
		c.Error(err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, input, formFile(c, "mealImage"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	payload, err := jsonPart(c, "recipe")
	if err != nil {
		c.Error(err)
		return
	}
	input, err := validation.DecodeRecipeInput(payload)
	if err != nil {
		c.Error(err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, input, formFile(c, "mealImage"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	recipe, err := h.recipes.Delete(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
