// internal/domain/purchase/service.go
package purchase

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles purchase business logic. Every mutation runs inside a
// single transaction so the purchase row and the ingredient stock ledger
// always move together: the caller never observes a purchase without its
// stock delta or a stock delta without its purchase.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new purchase service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Request represents purchase creation and update data
type Request struct {
	ProductName string   `json:"materia_prima_id"`
	Quantity    *float64 `json:"cantidad_comprada"`
	TotalCost   *float64 `json:"costo_total_compra"`
	Date        string   `json:"fecha_compra"`
}

// GetPurchases retrieves all purchases, most recent first
func (s *Service) GetPurchases() ([]Purchase, error) {
	var purchases []Purchase
	if err := s.db.Order("fecha DESC, id DESC").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchases: %w", err)
	}
	return purchases, nil
}

// GetPurchase retrieves a single purchase by ID
func (s *Service) GetPurchase(id uint) (*Purchase, error) {
	var p Purchase
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve purchase: %w", err)
	}
	return &p, nil
}

// CreatePurchase records a purchase against the named ingredient and adds the
// purchased quantity to its stock. Unit and unit cost are snapshotted from
// the ingredient at this moment.
func (s *Service) CreatePurchase(req *Request) (*Purchase, error) {
	date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	var created *Purchase
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var ing ingredient.Ingredient
		if err := tx.Where("nombre = ?", req.ProductName).First(&ing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: ingredient %q", apperr.ErrNotFound, req.ProductName)
			}
			return fmt.Errorf("failed to look up ingredient: %w", err)
		}

		p := &Purchase{
			ProductName: req.ProductName,
			Quantity:    *req.Quantity,
			Unit:        ing.Unit,
			UnitCost:    ing.UnitCost,
			TotalCost:   *req.TotalCost,
			Date:        date,
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}

		if err := ingredient.AdjustStock(tx, req.ProductName, *req.Quantity); err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdatePurchase rewrites a purchase and reconciles the stock ledger: the
// prior quantity is reversed against the prior ingredient before the new
// quantity is applied against the (possibly different) new one. When both
// names coincide the two arithmetic updates net to newQuantity-oldQuantity.
func (s *Service) UpdatePurchase(id uint, req *Request) (*Purchase, error) {
	date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	var updated *Purchase
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var prior Purchase
		if err := tx.First(&prior, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: purchase %d", apperr.ErrNotFound, id)
			}
			return fmt.Errorf("failed to retrieve purchase: %w", err)
		}

		var ing ingredient.Ingredient
		if err := tx.Where("nombre = ?", req.ProductName).First(&ing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: ingredient %q", apperr.ErrNotFound, req.ProductName)
			}
			return fmt.Errorf("failed to look up ingredient: %w", err)
		}

		p := prior
		p.ProductName = req.ProductName
		p.Quantity = *req.Quantity
		p.Unit = ing.Unit
		p.UnitCost = ing.UnitCost
		p.TotalCost = *req.TotalCost
		p.Date = date
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}

		// Reverse the old delta first, then apply the new one.
		if err := ingredient.AdjustStock(tx, prior.ProductName, -prior.Quantity); err != nil {
			return err
		}
		if err := ingredient.AdjustStock(tx, req.ProductName, *req.Quantity); err != nil {
			return err
		}

		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeletePurchase removes a purchase and subtracts its quantity from the
// referenced ingredient's stock.
func (s *Service) DeletePurchase(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var prior Purchase
		if err := tx.First(&prior, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: purchase %d", apperr.ErrNotFound, id)
			}
			return fmt.Errorf("failed to retrieve purchase: %w", err)
		}

		if err := tx.Delete(&Purchase{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}

		return ingredient.AdjustStock(tx, prior.ProductName, -prior.Quantity)
	})
}

func (s *Service) validate(req *Request) (time.Time, error) {
	if req.ProductName == "" || req.Quantity == nil || req.TotalCost == nil || req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: materia_prima_id, cantidad_comprada, costo_total_compra and fecha_compra are required", apperr.ErrInvalidArgument)
	}
	date, err := time.Parse(ingredient.DateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha_compra must be a valid date", apperr.ErrInvalidArgument)
	}
	return date, nil
}
