// internal/domain/sale/service.go
package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles sale business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sale service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Request represents sale creation and update data
type Request struct {
	Date          string   `json:"fecha"`
	RecipeID      *uint    `json:"platillo_id"`
	Quantity      *float64 `json:"cantidad"`
	UnitPrice     *float64 `json:"precio_unitario"`
	Total         *float64 `json:"total_venta"`
	PaymentMethod string   `json:"metodo_pago"`
	Description   string   `json:"descripcion"`
}

// ListRequest represents sale list query parameters
type ListRequest struct {
	DateFrom string `form:"fechaInicio"`
	DateTo   string `form:"fechaFin"`
}

// Row is a sale joined with the name of the recipe it was sold against
type Row struct {
	Sale
	RecipeName string `json:"nombre_platillo"`
}

// GetSales retrieves sales, most recent first, optionally restricted to a
// date range, each joined with its recipe name
func (s *Service) GetSales(req *ListRequest) ([]Row, error) {
	query := s.db.Model(&Sale{}).
		Select("ventas.*, recetas_estandar.nombre_platillo AS recipe_name").
		Joins("JOIN recetas_estandar ON recetas_estandar.id = ventas.platillo_id")

	if req.DateFrom != "" && req.DateTo != "" {
		from, err := time.Parse(ingredient.DateLayout, req.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: fechaInicio must be a valid date", apperr.ErrInvalidArgument)
		}
		to, err := time.Parse(ingredient.DateLayout, req.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: fechaFin must be a valid date", apperr.ErrInvalidArgument)
		}
		query = query.Where("ventas.fecha BETWEEN ? AND ?", from, to)
	}

	var rows []Row
	if err := query.Order("ventas.fecha DESC, ventas.id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	return rows, nil
}

// GetSale retrieves a single sale by ID
func (s *Service) GetSale(id uint) (*Sale, error) {
	var sl Sale
	if err := s.db.First(&sl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sale %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", err)
	}
	return &sl, nil
}

// CreateSale records a sale
func (s *Service) CreateSale(req *Request) (*Sale, error) {
	date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	sl := &Sale{
		Date:          date,
		RecipeID:      *req.RecipeID,
		Quantity:      *req.Quantity,
		UnitPrice:     *req.UnitPrice,
		Total:         *req.Total,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	}
	if err := s.db.Create(sl).Error; err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return sl, nil
}

// UpdateSale rewrites a sale
func (s *Service) UpdateSale(id uint, req *Request) (*Sale, error) {
	date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	var sl Sale
	if err := s.db.First(&sl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sale %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", err)
	}

	sl.Date = date
	sl.RecipeID = *req.RecipeID
	sl.Quantity = *req.Quantity
	sl.UnitPrice = *req.UnitPrice
	sl.Total = *req.Total
	sl.PaymentMethod = req.PaymentMethod
	sl.Description = req.Description

	if err := s.db.Save(&sl).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return &sl, nil
}

// DeleteSale removes a sale by ID
func (s *Service) DeleteSale(id uint) error {
	result := s.db.Delete(&Sale{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete sale: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: sale %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (s *Service) validate(req *Request) (time.Time, error) {
	if req.Date == "" || req.RecipeID == nil || req.Quantity == nil || req.UnitPrice == nil || req.Total == nil {
		return time.Time{}, fmt.Errorf("%w: fecha, platillo_id, cantidad, precio_unitario and total_venta are required", apperr.ErrInvalidArgument)
	}
	date, err := time.Parse(ingredient.DateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha must be a valid date", apperr.ErrInvalidArgument)
	}
	return date, nil
}
