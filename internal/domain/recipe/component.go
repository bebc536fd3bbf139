// internal/domain/recipe/component.go
package recipe

import (
	"errors"
	"fmt"

	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// ComponentRequest represents component creation and update data. Quantity
// and UnitCost arrive untyped because clients send them both as JSON numbers
// and as strings; they are coerced before any store access.
type ComponentRequest struct {
	RecipeID     uint        `json:"receta_id"`
	Type         string      `json:"tipo_componente"`
	DisplayName  string      `json:"nombre_componente"`
	IngredientID *uint       `json:"materia_prima_id"`
	SubRecipeID  *uint       `json:"subreceta_referencia_id"`
	Quantity     interface{} `json:"cantidad"`
	Unit         string      `json:"unidad"`
	UnitCost     interface{} `json:"costo_unitario"`
}

// ComponentView is a component row with display fields resolved against the
// referenced ingredient or sub-recipe when the stored snapshot is incomplete
type ComponentView struct {
	Component
	ResolvedUnitCost float64 `json:"costo_unitario_resuelto"`
	LineTotal        float64 `json:"costo_total_componente"`
}

// GetComponents retrieves a recipe's bill of materials ordered by component
// name. Rows written without a unit cost or unit fall back to the referenced
// ingredient's current values, or to the referenced sub-recipe's computed
// cost.
func (s *Service) GetComponents(recipeID uint) ([]ComponentView, error) {
	var components []Component
	if err := s.db.Where("receta_id = ?", recipeID).Order("nombre_componente ASC").Find(&components).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recipe components: %w", err)
	}

	views := make([]ComponentView, 0, len(components))
	for _, comp := range components {
		view := ComponentView{Component: comp}

		if comp.UnitCost != nil {
			view.ResolvedUnitCost = *comp.UnitCost
		} else {
			switch comp.Type {
			case ComponentTypeBaseIngredient:
				if comp.IngredientID != nil {
					var ing ingredient.Ingredient
					if err := s.db.First(&ing, *comp.IngredientID).Error; err == nil {
						view.ResolvedUnitCost = ing.UnitCost
						if view.Unit == "" {
							view.Unit = ing.Unit
						}
					}
				}
			case ComponentTypeSubRecipe:
				if comp.SubRecipeID != nil {
					var sub Recipe
					if err := s.db.First(&sub, *comp.SubRecipeID).Error; err == nil {
						view.ResolvedUnitCost = sub.ComputedCost
					}
				}
			}
		}

		view.LineTotal = round4(comp.Quantity * view.ResolvedUnitCost)
		views = append(views, view)
	}

	return views, nil
}

// AddComponent attaches a component to a recipe and recomputes the owning
// recipe's cost. The recompute is best-effort: a failure there is logged but
// the component stays committed.
func (s *Service) AddComponent(req *ComponentRequest) (*Component, error) {
	if req.RecipeID == 0 {
		return nil, fmt.Errorf("%w: receta_id is required", apperr.ErrInvalidArgument)
	}
	comp, err := s.componentFromRequest(req)
	if err != nil {
		return nil, err
	}
	comp.RecipeID = req.RecipeID

	if err := s.db.Create(comp).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe component: %w", err)
	}

	s.recomputeBestEffort(comp.RecipeID)
	return comp, nil
}

// UpdateComponent rewrites a component and recomputes the owning recipe's
// cost, with the same best-effort recompute semantics as AddComponent
func (s *Service) UpdateComponent(id uint, req *ComponentRequest) (*Component, error) {
	comp, err := s.componentFromRequest(req)
	if err != nil {
		return nil, err
	}

	var existing Component
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe component %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve recipe component: %w", err)
	}

	existing.Type = comp.Type
	existing.DisplayName = comp.DisplayName
	existing.IngredientID = comp.IngredientID
	existing.SubRecipeID = comp.SubRecipeID
	existing.Quantity = comp.Quantity
	existing.Unit = comp.Unit
	existing.UnitCost = comp.UnitCost
	existing.TotalCost = comp.TotalCost

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe component: %w", err)
	}

	s.recomputeBestEffort(existing.RecipeID)
	return &existing, nil
}

// DeleteComponent removes a component and recomputes the recipe it belonged
// to
func (s *Service) DeleteComponent(id uint) error {
	var existing Component
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: recipe component %d", apperr.ErrNotFound, id)
		}
		return fmt.Errorf("failed to retrieve recipe component: %w", err)
	}

	if err := s.db.Delete(&Component{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe component: %w", err)
	}

	s.recomputeBestEffort(existing.RecipeID)
	return nil
}

// componentFromRequest validates a component request and coerces its numeric
// fields. TotalCost is always derived here, never taken from the caller.
func (s *Service) componentFromRequest(req *ComponentRequest) (*Component, error) {
	quantity, ok := toFloat(req.Quantity)
	if !ok {
		return nil, fmt.Errorf("%w: cantidad must be a valid number", apperr.ErrInvalidArgument)
	}
	if req.Type == "" || req.DisplayName == "" {
		return nil, fmt.Errorf("%w: tipo_componente and nombre_componente are required", apperr.ErrInvalidArgument)
	}

	compType := ComponentType(req.Type)
	switch compType {
	case ComponentTypeBaseIngredient:
		if req.IngredientID == nil {
			return nil, fmt.Errorf("%w: materia_prima_id is required for an ingredient component", apperr.ErrInvalidArgument)
		}
	case ComponentTypeSubRecipe:
		if req.SubRecipeID == nil {
			return nil, fmt.Errorf("%w: subreceta_referencia_id is required for a sub-recipe component", apperr.ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%w: unknown tipo_componente %q", apperr.ErrInvalidArgument, req.Type)
	}

	comp := &Component{
		Type:        compType,
		DisplayName: req.DisplayName,
		Quantity:    quantity,
		Unit:        req.Unit,
	}
	// Only the reference field selected by the type is kept.
	if compType == ComponentTypeBaseIngredient {
		comp.IngredientID = req.IngredientID
	} else {
		comp.SubRecipeID = req.SubRecipeID
	}

	// A missing or malformed unit cost is stored as null and the line total
	// collapses to zero.
	if unitCost, ok := toFloat(req.UnitCost); ok {
		comp.UnitCost = &unitCost
		comp.TotalCost = round4(quantity * unitCost)
	}

	return comp, nil
}
