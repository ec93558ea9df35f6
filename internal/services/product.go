package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/types"
	"github.com/yungbote/crmcore-backend/internal/validate"
)

type CreateProductInput struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*types.Product, error)
	List(ctx context.Context, filter repos.ProductFilter) ([]*types.Product, error)
	UpdateLowStock(ctx context.Context) ([]*types.Product, string, error)
}

type productService struct {
	db            *gorm.DB
	log           *logger.Logger
	productRepo   repos.ProductRepo
	lowStockLimit int
	restockAmount int
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, lowStockLimit, restockAmount int) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:            db,
		log:           serviceLog,
		productRepo:   productRepo,
		lowStockLimit: lowStockLimit,
		restockAmount: restockAmount,
	}
}

func (ps *productService) Create(ctx context.Context, input CreateProductInput) (*types.Product, error) {
	if err := validate.Price(input.Price); err != nil {
		return nil, err
	}
	if err := validate.Stock(input.Stock); err != nil {
		return nil, err
	}

	product := &types.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	}
	if _, err := ps.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		ps.log.Warn("Create product failed", "error", err)
		return nil, apperrors.Systemf("creating product: %v", err)
	}
	return product, nil
}

func (ps *productService) List(ctx context.Context, filter repos.ProductFilter) ([]*types.Product, error) {
	products, err := ps.productRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apperrors.Systemf("listing products: %v", err)
	}
	return products, nil
}

// UpdateLowStock restocks every product whose stock sits strictly below the
// threshold, as one relative bulk update over the ids selected in this
// invocation. A product crossing the threshold concurrently between the
// selection and the update is out of scope here.
func (ps *productService) UpdateLowStock(ctx context.Context) ([]*types.Product, string, error) {
	updated := []*types.Product{}
	message := ""

	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lowStock, err := ps.productRepo.ListBelowStock(ctx, tx, ps.lowStockLimit)
		if err != nil {
			return apperrors.Systemf("selecting low-stock products: %v", err)
		}
		if len(lowStock) == 0 {
			message = "No low-stock products found."
			return nil
		}

		ids := make([]uuid.UUID, 0, len(lowStock))
		for _, p := range lowStock {
			ids = append(ids, p.ID)
		}
		if err := ps.productRepo.IncrementStock(ctx, tx, ids, ps.restockAmount); err != nil {
			return apperrors.Systemf("restocking products: %v", err)
		}

		reloaded, err := ps.productRepo.GetByIDs(ctx, tx, ids)
		if err != nil {
			return apperrors.Systemf("reloading restocked products: %v", err)
		}
		updated = reloaded

		names := make([]string, 0, len(reloaded))
		for _, p := range reloaded {
			names = append(names, p.Name)
		}
		message = fmt.Sprintf("Restocked %d product(s) (+%d stock each): %s.", len(reloaded), ps.restockAmount, strings.Join(names, ", "))
		return nil
	}); err != nil {
		ps.log.Error("Low-stock update failed", "error", err)
		return nil, "", err
	}

	ps.log.Info("Low-stock update finished", "updated", len(updated))
	return updated, message, nil
}
