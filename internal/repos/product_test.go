package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/crmcore-backend/internal/repos/testutil"
	"github.com/yungbote/crmcore-backend/internal/types"
)

func seedProducts(t *testing.T, repo ProductRepo) (*types.Product, *types.Product, *types.Product) {
	t.Helper()
	laptop := &types.Product{Name: "Laptop Pro", Price: decimal.RequireFromString("999.99"), Stock: 4}
	mouse := &types.Product{Name: "Wireless Mouse", Price: decimal.RequireFromString("25.50"), Stock: 40}
	cable := &types.Product{Name: "USB Cable", Price: decimal.RequireFromString("5.00"), Stock: 9}
	if _, err := repo.Create(context.Background(), nil, []*types.Product{laptop, mouse, cable}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return laptop, mouse, cable
}

func TestProductRepoGetByIDs(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))
	laptop, mouse, _ := seedProducts(t, repo)

	rows, err := repo.GetByIDs(ctx, nil, []uuid.UUID{laptop.ID, mouse.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetByIDs: expected 2 resolved, got %d", len(rows))
	}

	if rows, err := repo.GetByIDs(ctx, nil, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs empty: err=%v len=%d", err, len(rows))
	}
}

func TestProductRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))
	_, mouse, cable := seedProducts(t, repo)

	if rows, err := repo.List(ctx, nil, ProductFilter{NameContains: "cable"}); err != nil || len(rows) != 1 || rows[0].ID != cable.ID {
		t.Fatalf("List by name: err=%v rows=%d", err, len(rows))
	}

	// Range bounds are inclusive.
	gte := decimal.RequireFromString("25.50")
	lte := decimal.RequireFromString("999.99")
	rows, err := repo.List(ctx, nil, ProductFilter{PriceGte: &gte, PriceLte: &lte})
	if err != nil || len(rows) != 2 {
		t.Fatalf("List by price range: err=%v rows=%d", err, len(rows))
	}

	stockLte := 9
	if rows, err := repo.List(ctx, nil, ProductFilter{StockLte: &stockLte}); err != nil || len(rows) != 2 {
		t.Fatalf("List by stock lte: err=%v rows=%d", err, len(rows))
	}
	stockGte := 40
	if rows, err := repo.List(ctx, nil, ProductFilter{StockGte: &stockGte}); err != nil || len(rows) != 1 || rows[0].ID != mouse.ID {
		t.Fatalf("List by stock gte: err=%v rows=%d", err, len(rows))
	}
}

func TestProductRepoLowStock(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))
	laptop, _, cable := seedProducts(t, repo)

	low, err := repo.ListBelowStock(ctx, nil, 10)
	if err != nil {
		t.Fatalf("ListBelowStock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("ListBelowStock: expected 2, got %d", len(low))
	}

	if err := repo.IncrementStock(ctx, nil, []uuid.UUID{laptop.ID, cable.ID}, 10); err != nil {
		t.Fatalf("IncrementStock: %v", err)
	}
	reloaded, err := repo.GetByIDs(ctx, nil, []uuid.UUID{laptop.ID, cable.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	for _, p := range reloaded {
		switch p.ID {
		case laptop.ID:
			if p.Stock != 14 {
				t.Errorf("laptop stock: expected 14, got %d", p.Stock)
			}
		case cable.ID:
			if p.Stock != 19 {
				t.Errorf("cable stock: expected 19, got %d", p.Stock)
			}
		}
	}
}

func TestProductRepoUpdatePrice(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))
	laptop, _, _ := seedProducts(t, repo)

	newPrice := decimal.RequireFromString("1099.00")
	if err := repo.UpdatePrice(ctx, nil, laptop.ID, newPrice); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	reloaded, err := repo.GetByIDs(ctx, nil, []uuid.UUID{laptop.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(reloaded))
	}
	if !reloaded[0].Price.Equal(newPrice) {
		t.Fatalf("price: expected %s, got %s", newPrice, reloaded[0].Price)
	}
}
