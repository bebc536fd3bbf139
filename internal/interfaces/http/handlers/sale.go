// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/sale"
	"gorm.io/gorm"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	saleService *sale.Service
	config      *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, cfg *config.Config) *SaleHandler {
	return &SaleHandler{
		saleService: sale.NewService(db, cfg),
		config:      cfg,
	}
}

// GetSales handles GET /ventas
func (h *SaleHandler) GetSales(c *gin.Context) {
	var req sale.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	sales, err := h.saleService.GetSales(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetSale handles GET /ventas/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sl, err := h.saleService.GetSale(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sl)
}

// CreateSale handles POST /ventas
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req sale.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sl, err := h.saleService.CreateSale(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      sl.ID,
		"message": "Sale recorded successfully",
	})
}

// UpdateSale handles PUT /ventas/:id
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sale.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.saleService.UpdateSale(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale updated successfully",
	})
}

// DeleteSale handles DELETE /ventas/:id
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale deleted successfully",
	})
}
