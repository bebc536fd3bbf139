// internal/domain/ingredient/service.go
package ingredient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles ingredient business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new ingredient service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents ingredient list query parameters
type ListRequest struct {
	Name     string `form:"nombre"`
	DateFrom string `form:"fechaInicio"`
	DateTo   string `form:"fechaFin"`
}

// CreateRequest represents ingredient creation data
type CreateRequest struct {
	Name        string   `json:"nombre"`
	Unit        string   `json:"unidad"`
	UnitCost    *float64 `json:"costo"`
	Quantity    *float64 `json:"cantidad"`
	AcquiredOn  string   `json:"fecha_ingreso"`
	Description string   `json:"descripcion"`
}

// GetIngredients retrieves ingredients with optional name and intake date filters
func (s *Service) GetIngredients(req *ListRequest) ([]Ingredient, error) {
	query := s.db.Model(&Ingredient{})

	if req.Name != "" {
		search := "%" + strings.ToLower(req.Name) + "%"
		query = query.Where("LOWER(nombre) LIKE ?", search)
	}
	if req.DateFrom != "" {
		from, err := time.Parse(DateLayout, req.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: fechaInicio must be a valid date", apperr.ErrInvalidArgument)
		}
		query = query.Where("fecha_ingreso >= ?", from)
	}
	if req.DateTo != "" {
		to, err := time.Parse(DateLayout, req.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: fechaFin must be a valid date", apperr.ErrInvalidArgument)
		}
		query = query.Where("fecha_ingreso <= ?", to)
	}

	var ingredients []Ingredient
	if err := query.Order("nombre ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve ingredients: %w", err)
	}

	return ingredients, nil
}

// GetIngredient retrieves a single ingredient by ID
func (s *Service) GetIngredient(id uint) (*Ingredient, error) {
	var ing Ingredient
	if err := s.db.First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve ingredient: %w", err)
	}
	return &ing, nil
}

// GetIngredientNames retrieves the distinct ingredient names, sorted
func (s *Service) GetIngredientNames() ([]string, error) {
	var names []string
	if err := s.db.Model(&Ingredient{}).Distinct("nombre").Order("nombre ASC").Pluck("nombre", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve ingredient names: %w", err)
	}
	return names, nil
}

// CreateIngredient creates a new ingredient
func (s *Service) CreateIngredient(req *CreateRequest) (*Ingredient, error) {
	acquiredOn, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	ing := &Ingredient{
		Name:        req.Name,
		Unit:        req.Unit,
		UnitCost:    *req.UnitCost,
		Quantity:    *req.Quantity,
		AcquiredOn:  acquiredOn,
		Description: req.Description,
	}

	if err := s.db.Create(ing).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	return ing, nil
}

// UpdateIngredient updates an existing ingredient
func (s *Service) UpdateIngredient(id uint, req *CreateRequest) (*Ingredient, error) {
	acquiredOn, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	var ing Ingredient
	if err := s.db.First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve ingredient: %w", err)
	}

	ing.Name = req.Name
	ing.Unit = req.Unit
	ing.UnitCost = *req.UnitCost
	ing.Quantity = *req.Quantity
	ing.AcquiredOn = acquiredOn
	ing.Description = req.Description

	if err := s.db.Save(&ing).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	return &ing, nil
}

// DeleteIngredient deletes an ingredient by ID
func (s *Service) DeleteIngredient(id uint) error {
	result := s.db.Delete(&Ingredient{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ingredient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: ingredient %d", apperr.ErrNotFound, id)
	}
	return nil
}

// AdjustStock applies a stock delta to the ingredient identified by name.
// The update is a single arithmetic statement so concurrent purchases against
// the same ingredient cannot lose updates. It must run inside the same
// transaction as the purchase mutation that caused it; callers pass that
// transaction handle.
func AdjustStock(tx *gorm.DB, name string, delta float64) error {
	result := tx.Model(&Ingredient{}).
		Where("nombre = ?", name).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock for %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: ingredient %q", apperr.ErrNotFound, name)
	}
	return nil
}

func (s *Service) validate(req *CreateRequest) (time.Time, error) {
	if req.Name == "" || req.Unit == "" || req.AcquiredOn == "" || req.UnitCost == nil || req.Quantity == nil {
		return time.Time{}, fmt.Errorf("%w: nombre, unidad, costo, cantidad and fecha_ingreso are required", apperr.ErrInvalidArgument)
	}
	acquiredOn, err := time.Parse(DateLayout, req.AcquiredOn)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha_ingreso must be a valid date", apperr.ErrInvalidArgument)
	}
	return acquiredOn, nil
}
