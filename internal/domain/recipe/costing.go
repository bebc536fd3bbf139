// internal/domain/recipe/costing.go
package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Recompute rebuilds a recipe's derived costing figures from its current
// bill of materials and persists them. It is idempotent: with no intervening
// component change, running it twice stores identical values.
//
// For a final product the sale price is re-derived from the computed cost via
// the markup policy, except that a zero cost never clobbers a previously set
// price. For a sub-recipe the stored price is left alone; it carries the
// recipe's cost for parents that reference it, not a sellable price.
//
// Costs are summed over the immediate components only. A sub-recipe
// component contributes its captured unit cost snapshot, not a recursive
// recompute of the sub-recipe.
func (s *Service) Recompute(recipeID uint) error {
	var computedCost float64
	err := s.db.Model(&Component{}).
		Where("receta_id = ?", recipeID).
		Select("COALESCE(SUM(costo_total_ingrediente), 0)").
		Scan(&computedCost).Error
	if err != nil {
		return fmt.Errorf("failed to sum component costs: %w", err)
	}
	computedCost = round2(computedCost)

	var r Recipe
	if err := s.db.Select("precio_venta", "es_producto_final").First(&r, recipeID).Error; err != nil {
		return fmt.Errorf("failed to retrieve recipe %d: %w", recipeID, err)
	}

	salePrice := r.SalePrice
	if r.IsFinalProduct {
		salePrice = round2(computedCost * s.config.Costing.Markup)
		if salePrice == 0 && computedCost == 0 {
			// An empty bill of materials keeps whatever price was set
			// manually instead of zeroing it.
			salePrice = r.SalePrice
		}
	}

	grossProfit := round2(salePrice - computedCost)
	var profitPercent float64
	if r.IsFinalProduct {
		if computedCost != 0 {
			profitPercent = round2(grossProfit / computedCost * 100)
		}
	} else if salePrice > 0 {
		profitPercent = round2(grossProfit / salePrice * 100)
	}

	// The write is conditioned on the final-product flag still holding the
	// value read above, so a concurrent flag flip invalidates this update
	// instead of persisting figures derived from a stale flag.
	result := s.db.Model(&Recipe{}).
		Where("id = ? AND es_producto_final = ?", recipeID, r.IsFinalProduct).
		Updates(map[string]interface{}{
			"costo_total_calculado": computedCost,
			"precio_venta":          salePrice,
			"utilidad_bruta":        grossProfit,
			"porcentaje_utilidad":   profitPercent,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to persist recomputed costs for recipe %d: %w", recipeID, result.Error)
	}

	return nil
}

// recomputeBestEffort runs Recompute after a component mutation. Failures
// are logged and swallowed: the component change stays committed and the
// recipe's derived figures go stale until the next recompute.
func (s *Service) recomputeBestEffort(recipeID uint) {
	if err := s.Recompute(recipeID); err != nil {
		logrus.WithError(err).WithField("receta_id", recipeID).
			Error("recipe cost recompute failed; stored costs are stale")
	}
}

// toFloat coerces the numeric representations clients actually send: JSON
// numbers, numeric strings, and json.Number.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
