// internal/interfaces/http/handlers/purchase.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/purchase"
	"gorm.io/gorm"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	purchaseService *purchase.Service
	config          *config.Config
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(db *gorm.DB, cfg *config.Config) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchase.NewService(db, cfg),
		config:          cfg,
	}
}

// GetPurchases handles GET /compras
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.GetPurchases()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// GetPurchase handles GET /compras/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.purchaseService.GetPurchase(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreatePurchase handles POST /compras
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req purchase.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.purchaseService.CreatePurchase(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      p.ID,
		"message": "Purchase recorded and stock updated",
	})
}

// UpdatePurchase handles PUT /compras/:id
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req purchase.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.purchaseService.UpdatePurchase(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase updated and stock reconciled",
	})
}

// DeletePurchase handles DELETE /compras/:id
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.DeletePurchase(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase deleted and stock reverted",
	})
}
