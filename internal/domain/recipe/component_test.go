// internal/domain/recipe/component_test.go
package recipe

import (
	"errors"
	"testing"
	"time"

	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
)

func TestAddComponentValidation(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	tests := []struct {
		name string
		req  ComponentRequest
	}{
		{"missing recipe id", ComponentRequest{
			Type: string(ComponentTypeBaseIngredient), DisplayName: "Harina",
			IngredientID: uintPtr(1), Quantity: float64(1),
		}},
		{"missing type", ComponentRequest{
			RecipeID: r.ID, DisplayName: "Harina",
			IngredientID: uintPtr(1), Quantity: float64(1),
		}},
		{"unknown type", ComponentRequest{
			RecipeID: r.ID, Type: "otra_cosa", DisplayName: "Harina",
			IngredientID: uintPtr(1), Quantity: float64(1),
		}},
		{"missing display name", ComponentRequest{
			RecipeID: r.ID, Type: string(ComponentTypeBaseIngredient),
			IngredientID: uintPtr(1), Quantity: float64(1),
		}},
		{"ingredient component without ingredient ref", ComponentRequest{
			RecipeID: r.ID, Type: string(ComponentTypeBaseIngredient), DisplayName: "Harina",
			Quantity: float64(1),
		}},
		{"sub-recipe component without recipe ref", ComponentRequest{
			RecipeID: r.ID, Type: string(ComponentTypeSubRecipe), DisplayName: "Masa",
			Quantity: float64(1),
		}},
		{"unparseable quantity", ComponentRequest{
			RecipeID: r.ID, Type: string(ComponentTypeBaseIngredient), DisplayName: "Harina",
			IngredientID: uintPtr(1), Quantity: "mucho",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddComponent(&tt.req); !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestAddComponentCoercesStringNumbers(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	comp, err := s.AddComponent(&ComponentRequest{
		RecipeID:     r.ID,
		Type:         string(ComponentTypeBaseIngredient),
		DisplayName:  "Harina",
		IngredientID: uintPtr(1),
		Quantity:     "2.5",
		Unit:         "kg",
		UnitCost:     "3.1",
	})
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if comp.Quantity != 2.5 {
		t.Fatalf("expected quantity 2.5, got %v", comp.Quantity)
	}
	if comp.UnitCost == nil || !approx(*comp.UnitCost, 3.1) {
		t.Fatalf("expected unit cost 3.1, got %v", comp.UnitCost)
	}
	if !approx(comp.TotalCost, 7.75) {
		t.Fatalf("expected line total 7.75, got %v", comp.TotalCost)
	}
}

func TestAddComponentKeepsOnlyTypedReference(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	comp, err := s.AddComponent(&ComponentRequest{
		RecipeID:     r.ID,
		Type:         string(ComponentTypeBaseIngredient),
		DisplayName:  "Harina",
		IngredientID: uintPtr(7),
		SubRecipeID:  uintPtr(9),
		Quantity:     float64(1),
		UnitCost:     float64(2),
	})
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if comp.IngredientID == nil || *comp.IngredientID != 7 {
		t.Fatalf("expected ingredient reference kept, got %v", comp.IngredientID)
	}
	if comp.SubRecipeID != nil {
		t.Fatalf("expected sub-recipe reference discarded, got %v", *comp.SubRecipeID)
	}
}

func TestAddComponentWithoutUnitCostStoresNull(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	comp, err := s.AddComponent(&ComponentRequest{
		RecipeID:     r.ID,
		Type:         string(ComponentTypeBaseIngredient),
		DisplayName:  "Harina",
		IngredientID: uintPtr(1),
		Quantity:     float64(2),
	})
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if comp.UnitCost != nil {
		t.Fatalf("expected null unit cost, got %v", *comp.UnitCost)
	}
	if comp.TotalCost != 0 {
		t.Fatalf("expected zero line total, got %v", comp.TotalCost)
	}
}

func TestUpdateComponentNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.UpdateComponent(999, &ComponentRequest{
		Type:         string(ComponentTypeBaseIngredient),
		DisplayName:  "Harina",
		IngredientID: uintPtr(1),
		Quantity:     float64(1),
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteComponentNotFound(t *testing.T) {
	s := newTestService(t)
	if err := s.DeleteComponent(999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetComponentsResolvesFallbacks(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	ing := &ingredient.Ingredient{
		Name:       "Harina",
		Quantity:   10,
		Unit:       "kg",
		UnitCost:   2.5,
		AcquiredOn: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := s.db.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}

	sub := seedRecipe(t, s, "Masa madre", false)
	if err := s.db.Model(&Recipe{}).Where("id = ?", sub.ID).Update("costo_total_calculado", 3.5).Error; err != nil {
		t.Fatalf("set sub-recipe cost: %v", err)
	}

	// Rows written without a cost snapshot, as older clients did.
	rows := []Component{
		{RecipeID: r.ID, Type: ComponentTypeBaseIngredient, IngredientID: &ing.ID, DisplayName: "Harina", Quantity: 2},
		{RecipeID: r.ID, Type: ComponentTypeSubRecipe, SubRecipeID: &sub.ID, DisplayName: "Masa madre", Quantity: 1, Unit: "kg"},
	}
	for i := range rows {
		if err := s.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed component: %v", err)
		}
	}

	views, err := s.GetComponents(r.ID)
	if err != nil {
		t.Fatalf("GetComponents: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 components, got %d", len(views))
	}

	base := views[0]
	if base.DisplayName != "Harina" {
		t.Fatalf("expected name-sorted components, got %q first", base.DisplayName)
	}
	if !approx(base.ResolvedUnitCost, 2.5) {
		t.Fatalf("expected ingredient cost fallback 2.5, got %v", base.ResolvedUnitCost)
	}
	if base.Unit != "kg" {
		t.Fatalf("expected unit backfilled from ingredient, got %q", base.Unit)
	}
	if !approx(base.LineTotal, 5) {
		t.Fatalf("expected line total 5, got %v", base.LineTotal)
	}

	subView := views[1]
	if !approx(subView.ResolvedUnitCost, 3.5) {
		t.Fatalf("expected sub-recipe cost fallback 3.5, got %v", subView.ResolvedUnitCost)
	}
	if !approx(subView.LineTotal, 3.5) {
		t.Fatalf("expected line total 3.5, got %v", subView.LineTotal)
	}
}

func TestGetComponentsPrefersStoredSnapshot(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	snapshot := 4.0
	row := Component{
		RecipeID:    r.ID,
		Type:        ComponentTypeBaseIngredient,
		DisplayName: "Harina",
		Quantity:    2,
		Unit:        "kg",
		UnitCost:    &snapshot,
		TotalCost:   8,
	}
	if err := s.db.Create(&row).Error; err != nil {
		t.Fatalf("seed component: %v", err)
	}

	views, err := s.GetComponents(r.ID)
	if err != nil {
		t.Fatalf("GetComponents: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 component, got %d", len(views))
	}
	if !approx(views[0].ResolvedUnitCost, 4) || !approx(views[0].LineTotal, 8) {
		t.Fatalf("expected stored snapshot used, got %v / %v", views[0].ResolvedUnitCost, views[0].LineTotal)
	}
}
