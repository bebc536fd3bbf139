// internal/domain/recipe/service_test.go
package recipe

import (
	"errors"
	"math"
	"testing"

	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"github.com/your-org/restaurant-backend/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.OpenDB(t, &Recipe{}, &Component{}, &ingredient.Ingredient{})
	return NewService(db, testutil.NewConfig())
}

func boolPtr(v bool) *bool       { return &v }
func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint       { return &v }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func seedRecipe(t *testing.T, s *Service, name string, final bool) *Recipe {
	t.Helper()
	r, err := s.CreateRecipe(&CreateRequest{Name: name, IsFinalProduct: boolPtr(final)})
	if err != nil {
		t.Fatalf("seed recipe %q: %v", name, err)
	}
	return r
}

func TestCreateRecipe(t *testing.T) {
	s := newTestService(t)

	t.Run("starts with zero costing figures", func(t *testing.T) {
		r := seedRecipe(t, s, "Pan", true)
		if r.ComputedCost != 0 || r.SalePrice != 0 || r.GrossProfit != 0 || r.ProfitPercent != 0 {
			t.Fatalf("expected zeroed costing figures, got %+v", r)
		}
	})

	t.Run("requires name and final-product flag", func(t *testing.T) {
		if _, err := s.CreateRecipe(&CreateRequest{IsFinalProduct: boolPtr(true)}); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for missing name, got %v", err)
		}
		if _, err := s.CreateRecipe(&CreateRequest{Name: "Pan"}); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for missing flag, got %v", err)
		}
	})
}

func TestGetRecipesFilter(t *testing.T) {
	s := newTestService(t)
	seedRecipe(t, s, "Pan", true)
	seedRecipe(t, s, "Masa madre", false)
	seedRecipe(t, s, "Torta", true)

	all, err := s.GetRecipes(nil)
	if err != nil {
		t.Fatalf("GetRecipes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(all))
	}
	if all[0].Name != "Masa madre" || all[1].Name != "Pan" || all[2].Name != "Torta" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	finals, err := s.GetRecipes(boolPtr(true))
	if err != nil {
		t.Fatalf("GetRecipes(final): %v", err)
	}
	if len(finals) != 2 {
		t.Fatalf("expected 2 final products, got %d", len(finals))
	}

	subs, err := s.GetRecipes(boolPtr(false))
	if err != nil {
		t.Fatalf("GetRecipes(sub): %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Masa madre" {
		t.Fatalf("expected only Masa madre, got %v", subs)
	}
}

func TestUpdateRecipeDerivesProfit(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	updated, err := s.UpdateRecipe(r.ID, &UpdateRequest{
		Name:           "Pan blanco",
		IsFinalProduct: boolPtr(true),
		ComputedCost:   floatPtr(4),
		SalePrice:      floatPtr(6),
	})
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	if updated.Name != "Pan blanco" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if !approx(updated.GrossProfit, 2) {
		t.Fatalf("expected gross profit 2, got %v", updated.GrossProfit)
	}
	if !approx(updated.ProfitPercent, 50) {
		t.Fatalf("expected profit percent 50, got %v", updated.ProfitPercent)
	}

	t.Run("zero cost yields zero percent", func(t *testing.T) {
		updated, err := s.UpdateRecipe(r.ID, &UpdateRequest{
			Name:           "Pan blanco",
			IsFinalProduct: boolPtr(true),
			ComputedCost:   floatPtr(0),
			SalePrice:      floatPtr(6),
		})
		if err != nil {
			t.Fatalf("UpdateRecipe: %v", err)
		}
		if updated.ProfitPercent != 0 {
			t.Fatalf("expected profit percent 0, got %v", updated.ProfitPercent)
		}
	})

	t.Run("missing recipe", func(t *testing.T) {
		_, err := s.UpdateRecipe(999, &UpdateRequest{
			Name:           "X",
			IsFinalProduct: boolPtr(true),
			ComputedCost:   floatPtr(1),
			SalePrice:      floatPtr(2),
		})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.UpdateRecipe(r.ID, &UpdateRequest{Name: "X", IsFinalProduct: boolPtr(true)})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestApplyManualCosting(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	got, err := s.ApplyManualCosting(r.ID, &ManualCostingRequest{
		ComputedCost:         floatPtr(10),
		DesiredProfitPercent: floatPtr(50),
	})
	if err != nil {
		t.Fatalf("ApplyManualCosting: %v", err)
	}
	if !approx(got.ComputedCost, 10) || !approx(got.SalePrice, 15) {
		t.Fatalf("expected cost 10 and price 15, got %v / %v", got.ComputedCost, got.SalePrice)
	}
	if !approx(got.GrossProfit, 5) || !approx(got.ProfitPercent, 50) {
		t.Fatalf("expected gross 5 and percent 50, got %v / %v", got.GrossProfit, got.ProfitPercent)
	}

	if _, err := s.ApplyManualCosting(999, &ManualCostingRequest{
		ComputedCost:         floatPtr(10),
		DesiredProfitPercent: floatPtr(50),
	}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.ApplyManualCosting(r.ID, &ManualCostingRequest{ComputedCost: floatPtr(10)}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDeleteRecipeCascades(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan", true)

	for _, name := range []string{"Harina", "Agua"} {
		if _, err := s.AddComponent(&ComponentRequest{
			RecipeID:     r.ID,
			Type:         string(ComponentTypeBaseIngredient),
			DisplayName:  name,
			IngredientID: uintPtr(1),
			Quantity:     float64(1),
			UnitCost:     float64(2),
		}); err != nil {
			t.Fatalf("AddComponent %q: %v", name, err)
		}
	}

	if err := s.DeleteRecipe(r.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	if _, err := s.GetRecipe(r.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected recipe gone, got %v", err)
	}
	var count int64
	if err := s.db.Model(&Component{}).Where("receta_id = ?", r.ID).Count(&count).Error; err != nil {
		t.Fatalf("count components: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected components removed with recipe, %d remain", count)
	}

	if err := s.DeleteRecipe(r.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}
