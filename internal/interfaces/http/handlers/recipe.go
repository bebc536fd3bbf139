// internal/interfaces/http/handlers/recipe.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/recipe"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe and recipe component endpoints
type RecipeHandler struct {
	recipeService *recipe.Service
	config        *config.Config
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(db *gorm.DB, cfg *config.Config) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipe.NewService(db, cfg),
		config:        cfg,
	}
}

// GetRecipes handles GET /recetas-estandar
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	var isFinalProduct *bool
	if raw := c.Query("es_producto_final"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid es_producto_final filter",
			})
			return
		}
		isFinalProduct = &value
	}

	recipes, err := h.recipeService.GetRecipes(isFinalProduct)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /recetas-estandar/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := h.recipeService.GetRecipe(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// CreateRecipe handles POST /recetas-estandar
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req recipe.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.recipeService.CreateRecipe(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      r.ID,
		"message": "Recipe created successfully; costs are computed once components exist",
	})
}

// UpdateRecipe handles PUT /recetas-estandar/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req recipe.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.recipeService.UpdateRecipe(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
	})
}

// ApplyManualCosting handles PUT /recetas-estandar/:id/calcular-costo
func (h *RecipeHandler) ApplyManualCosting(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req recipe.ManualCostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.recipeService.ApplyManualCosting(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// RecomputeRecipeCost handles POST /recetas-estandar/:id/recalcular. The
// recompute is side-effect only and best-effort: failures are logged and the
// caller always receives an ok.
func (h *RecipeHandler) RecomputeRecipeCost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Recompute(id); err != nil {
		logrus.WithError(err).WithField("receta_id", id).
			Error("recipe cost recompute failed; stored costs are stale")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe cost recompute triggered",
	})
}

// DeleteRecipe handles DELETE /recetas/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe and its components deleted successfully",
	})
}

// RECIPE COMPONENT ENDPOINTS

// GetRecipeComponents handles GET /recetas-estandar/:id/ingredientes
func (h *RecipeHandler) GetRecipeComponents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	components, err := h.recipeService.GetComponents(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}

// AddRecipeComponent handles POST /ingredientes-receta
func (h *RecipeHandler) AddRecipeComponent(c *gin.Context) {
	var req recipe.ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	comp, err := h.recipeService.AddComponent(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      comp.ID,
		"message": "Component added; recipe cost recomputed",
	})
}

// UpdateRecipeComponent handles PUT /ingredientes-receta/:id
func (h *RecipeHandler) UpdateRecipeComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req recipe.ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.recipeService.UpdateComponent(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Component updated; recipe cost recomputed",
	})
}

// DeleteRecipeComponent handles DELETE /ingredientes-receta/:id
func (h *RecipeHandler) DeleteRecipeComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteComponent(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Component deleted; recipe cost recomputed",
	})
}
