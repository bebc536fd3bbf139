// internal/domain/sale/service_test.go
package sale

import (
	"errors"
	"testing"

	"github.com/your-org/restaurant-backend/internal/domain/recipe"
	"github.com/your-org/restaurant-backend/internal/pkg/apperr"
	"github.com/your-org/restaurant-backend/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.OpenDB(t, &recipe.Recipe{}, &Sale{})
	return NewService(db, testutil.NewConfig())
}

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }

func seedRecipe(t *testing.T, s *Service, name string) *recipe.Recipe {
	t.Helper()
	r := &recipe.Recipe{Name: name, IsFinalProduct: true}
	if err := s.db.Create(r).Error; err != nil {
		t.Fatalf("seed recipe %q: %v", name, err)
	}
	return r
}

func validRequest(recipeID uint) *Request {
	return &Request{
		Date:          "2025-04-01",
		RecipeID:      uintPtr(recipeID),
		Quantity:      floatPtr(2),
		UnitPrice:     floatPtr(5.32),
		Total:         floatPtr(10.64),
		PaymentMethod: "efectivo",
	}
}

func TestCreateSaleValidation(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan")

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing date", func(q *Request) { q.Date = "" }},
		{"malformed date", func(q *Request) { q.Date = "01/04/2025" }},
		{"missing recipe", func(q *Request) { q.RecipeID = nil }},
		{"missing quantity", func(q *Request) { q.Quantity = nil }},
		{"missing unit price", func(q *Request) { q.UnitPrice = nil }},
		{"missing total", func(q *Request) { q.Total = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(r.ID)
			tt.mutate(req)
			if _, err := s.CreateSale(req); !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCreateAndGetSale(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan")

	created, err := s.CreateSale(validRequest(r.ID))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	got, err := s.GetSale(created.ID)
	if err != nil {
		t.Fatalf("GetSale: %v", err)
	}
	if got.RecipeID != r.ID || got.Quantity != 2 || got.Total != 10.64 {
		t.Fatalf("unexpected sale: %+v", got)
	}

	if _, err := s.GetSale(999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetSalesJoinsRecipeName(t *testing.T) {
	s := newTestService(t)
	pan := seedRecipe(t, s, "Pan")
	torta := seedRecipe(t, s, "Torta")

	older := validRequest(pan.ID)
	older.Date = "2025-04-01"
	newer := validRequest(torta.ID)
	newer.Date = "2025-04-15"
	if _, err := s.CreateSale(older); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, err := s.CreateSale(newer); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	t.Run("most recent first with recipe names", func(t *testing.T) {
		rows, err := s.GetSales(&ListRequest{})
		if err != nil {
			t.Fatalf("GetSales: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 sales, got %d", len(rows))
		}
		if rows[0].RecipeName != "Torta" || rows[1].RecipeName != "Pan" {
			t.Fatalf("unexpected order or names: %q, %q", rows[0].RecipeName, rows[1].RecipeName)
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		rows, err := s.GetSales(&ListRequest{DateFrom: "2025-04-10", DateTo: "2025-04-30"})
		if err != nil {
			t.Fatalf("GetSales: %v", err)
		}
		if len(rows) != 1 || rows[0].RecipeName != "Torta" {
			t.Fatalf("expected only the Torta sale, got %v", rows)
		}
	})

	t.Run("malformed range is rejected", func(t *testing.T) {
		if _, err := s.GetSales(&ListRequest{DateFrom: "bad", DateTo: "2025-04-30"}); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestUpdateSale(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan")

	created, err := s.CreateSale(validRequest(r.ID))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	req := validRequest(r.ID)
	req.Quantity = floatPtr(3)
	req.Total = floatPtr(15.96)
	req.PaymentMethod = "tarjeta"
	updated, err := s.UpdateSale(created.ID, req)
	if err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if updated.Quantity != 3 || updated.Total != 15.96 || updated.PaymentMethod != "tarjeta" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := s.UpdateSale(999, validRequest(r.ID)); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSale(t *testing.T) {
	s := newTestService(t)
	r := seedRecipe(t, s, "Pan")

	created, err := s.CreateSale(validRequest(r.ID))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if err := s.DeleteSale(created.ID); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	if err := s.DeleteSale(created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}
