package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/types"
)

type ProductFilter struct {
	NameContains string
	PriceGte     *decimal.Decimal
	PriceLte     *decimal.Decimal
	StockGte     *int
	StockLte     *int
}

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, filter ProductFilter) ([]*types.Product, error)
	ListBelowStock(ctx context.Context, tx *gorm.DB, threshold int) ([]*types.Product, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID, amount int) error
	UpdatePrice(ctx context.Context, tx *gorm.DB, productID uuid.UUID, price decimal.Decimal) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(products) == 0 {
		return []*types.Product{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB, filter ProductFilter) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Product{})
	if filter.NameContains != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(filter.NameContains))
	}
	if filter.PriceGte != nil {
		q = q.Where("price >= ?", *filter.PriceGte)
	}
	if filter.PriceLte != nil {
		q = q.Where("price <= ?", *filter.PriceLte)
	}
	if filter.StockGte != nil {
		q = q.Where("stock >= ?", *filter.StockGte)
	}
	if filter.StockLte != nil {
		q = q.Where("stock <= ?", *filter.StockLte)
	}

	var results []*types.Product
	if err := q.Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListBelowStock(ctx context.Context, tx *gorm.DB, threshold int) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// IncrementStock applies one relative bulk update so a concurrent stock
// change on a selected product is added to rather than overwritten.
func (pr *productRepo) IncrementStock(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID, amount int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(productIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id IN ?", productIDs).
		UpdateColumn("stock", gorm.Expr("stock + ?", amount)).Error
}

func (pr *productRepo) UpdatePrice(ctx context.Context, tx *gorm.DB, productID uuid.UUID, price decimal.Decimal) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Update("price", price).Error
}
