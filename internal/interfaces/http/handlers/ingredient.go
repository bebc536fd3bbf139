// internal/interfaces/http/handlers/ingredient.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"gorm.io/gorm"
)

// IngredientHandler handles ingredient endpoints
type IngredientHandler struct {
	ingredientService *ingredient.Service
	config            *config.Config
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(db *gorm.DB, cfg *config.Config) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredient.NewService(db, cfg),
		config:            cfg,
	}
}

// GetIngredients handles GET /materia-prima
func (h *IngredientHandler) GetIngredients(c *gin.Context) {
	var req ingredient.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	ingredients, err := h.ingredientService.GetIngredients(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient handles GET /materia-prima/:id
func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ing, err := h.ingredientService.GetIngredient(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// GetIngredientNames handles GET /ingredientes/nombres
func (h *IngredientHandler) GetIngredientNames(c *gin.Context) {
	names, err := h.ingredientService.GetIngredientNames()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, names)
}

// CreateIngredient handles POST /materia-prima
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req ingredient.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ing, err := h.ingredientService.CreateIngredient(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      ing.ID,
		"message": "Ingredient created successfully",
	})
}

// UpdateIngredient handles PUT /materia-prima/:id
func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ingredient.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.ingredientService.UpdateIngredient(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient updated successfully",
	})
}

// DeleteIngredient handles DELETE /materia-prima/:id
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient deleted successfully",
	})
}
