// internal/domain/recipe/service.go
package recipe

import (
	"errors"
	"fmt"

	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles recipe business logic: the recipe registry, the bill of
// materials attached to each recipe, and the cost engine that keeps the
// derived figures consistent.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new recipe service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents recipe creation data
type CreateRequest struct {
	Name           string `json:"nombre"`
	IsFinalProduct *bool  `json:"es_producto_final"`
	PhotoURL       string `json:"foto_url"`
	Description    string `json:"descripcion"`
}

// UpdateRequest represents recipe update data
type UpdateRequest struct {
	Name           string   `json:"nombre_platillo"`
	IsFinalProduct *bool    `json:"es_producto_final"`
	ComputedCost   *float64 `json:"costo_total_calculado"`
	SalePrice      *float64 `json:"precio_venta"`
	PhotoURL       string   `json:"foto_url"`
	Description    string   `json:"descripcion"`
}

// ManualCostingRequest represents a manual cost-and-price assignment, where
// the caller picks the desired profit percentage instead of the fixed markup
type ManualCostingRequest struct {
	ComputedCost         *float64 `json:"costo_total_calculado"`
	DesiredProfitPercent *float64 `json:"porcentaje_utilidad_deseado"`
}

// GetRecipes retrieves recipes ordered by name, optionally filtered on the
// final-product flag
func (s *Service) GetRecipes(isFinalProduct *bool) ([]Recipe, error) {
	query := s.db.Model(&Recipe{})
	if isFinalProduct != nil {
		query = query.Where("es_producto_final = ?", *isFinalProduct)
	}

	var recipes []Recipe
	if err := query.Order("nombre_platillo ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a single recipe by ID
func (s *Service) GetRecipe(id uint) (*Recipe, error) {
	var r Recipe
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve recipe: %w", err)
	}
	return &r, nil
}

// CreateRecipe creates a recipe with all costing figures at zero. The cost
// engine fills them in once components are attached.
func (s *Service) CreateRecipe(req *CreateRequest) (*Recipe, error) {
	if req.Name == "" || req.IsFinalProduct == nil {
		return nil, fmt.Errorf("%w: nombre and es_producto_final are required", apperr.ErrInvalidArgument)
	}

	r := &Recipe{
		Name:           req.Name,
		IsFinalProduct: *req.IsFinalProduct,
		PhotoURL:       req.PhotoURL,
		Description:    req.Description,
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return r, nil
}

// UpdateRecipe rewrites a recipe's identity and price fields. Gross profit
// and profit percentage are derived from the supplied price and cost, never
// accepted from the caller.
func (s *Service) UpdateRecipe(id uint, req *UpdateRequest) (*Recipe, error) {
	if req.Name == "" || req.IsFinalProduct == nil || req.ComputedCost == nil || req.SalePrice == nil {
		return nil, fmt.Errorf("%w: nombre_platillo, es_producto_final, costo_total_calculado and precio_venta are required", apperr.ErrInvalidArgument)
	}

	var r Recipe
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve recipe: %w", err)
	}

	grossProfit := *req.SalePrice - *req.ComputedCost
	profitPercent := 0.0
	if *req.ComputedCost != 0 {
		profitPercent = grossProfit / *req.ComputedCost * 100
	}

	r.Name = req.Name
	r.IsFinalProduct = *req.IsFinalProduct
	r.ComputedCost = *req.ComputedCost
	r.SalePrice = *req.SalePrice
	r.GrossProfit = grossProfit
	r.ProfitPercent = profitPercent
	r.PhotoURL = req.PhotoURL
	r.Description = req.Description

	if err := s.db.Save(&r).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return &r, nil
}

// ApplyManualCosting sets a recipe's cost and derives the sale price from a
// caller-chosen profit percentage instead of the fixed markup policy
func (s *Service) ApplyManualCosting(id uint, req *ManualCostingRequest) (*Recipe, error) {
	if req.ComputedCost == nil || req.DesiredProfitPercent == nil {
		return nil, fmt.Errorf("%w: costo_total_calculado and porcentaje_utilidad_deseado are required", apperr.ErrInvalidArgument)
	}

	cost := round2(*req.ComputedCost)
	salePrice := round2(cost * (1 + *req.DesiredProfitPercent/100))
	grossProfit := round2(salePrice - cost)

	result := s.db.Model(&Recipe{}).Where("id = ?", id).Updates(map[string]interface{}{
		"costo_total_calculado": cost,
		"precio_venta":          salePrice,
		"utilidad_bruta":        grossProfit,
		"porcentaje_utilidad":   round2(*req.DesiredProfitPercent),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to apply costing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: recipe %d", apperr.ErrNotFound, id)
	}

	return s.GetRecipe(id)
}

// DeleteRecipe removes a recipe together with its bill of materials. Both
// deletes commit together or not at all.
func (s *Service) DeleteRecipe(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receta_id = ?", id).Delete(&Component{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe components: %w", err)
		}

		result := tx.Delete(&Recipe{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: recipe %d", apperr.ErrNotFound, id)
		}
		return nil
	})
}
