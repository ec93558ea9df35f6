package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/types"
)

type OrderFilter struct {
	TotalAmountGte       *decimal.Decimal
	TotalAmountLte       *decimal.Decimal
	OrderDateGte         *time.Time
	OrderDateLte         *time.Time
	CustomerNameContains string
	ProductNameContains  string
	ProductID            *uuid.UUID
}

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error)
	GetByID(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	RevenueSum(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

// Create persists the order row and its product associations in the caller's
// transaction. Product rows themselves are never touched.
func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(ctx).
		Omit("Products.*").
		Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result types.Order
	if err := transaction.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		Where("id = ?", orderID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Preload("Customer").
		Preload("Products")

	if filter.TotalAmountGte != nil {
		q = q.Where(`"order".total_amount >= ?`, *filter.TotalAmountGte)
	}
	if filter.TotalAmountLte != nil {
		q = q.Where(`"order".total_amount <= ?`, *filter.TotalAmountLte)
	}
	if filter.OrderDateGte != nil {
		q = q.Where(`"order".order_date >= ?`, *filter.OrderDateGte)
	}
	if filter.OrderDateLte != nil {
		q = q.Where(`"order".order_date <= ?`, *filter.OrderDateLte)
	}
	if filter.CustomerNameContains != "" {
		q = q.Joins(`JOIN "customer" ON "customer"."id" = "order"."customer_id"`).
			Where(`LOWER("customer"."name") LIKE ?`, containsPattern(filter.CustomerNameContains))
	}

	// A product can match more than one join row; DISTINCT keeps each order
	// appearing once.
	joined := false
	productJoin := func() {
		if !joined {
			q = q.Joins(`JOIN "order_products" ON "order_products"."order_id" = "order"."id"`).
				Joins(`JOIN "product" ON "product"."id" = "order_products"."product_id"`).
				Distinct(`"order".*`)
			joined = true
		}
	}
	if filter.ProductNameContains != "" {
		productJoin()
		q = q.Where(`LOWER("product"."name") LIKE ?`, containsPattern(filter.ProductNameContains))
	}
	if filter.ProductID != nil {
		productJoin()
		q = q.Where(`"product"."id" = ?`, *filter.ProductID)
	}

	var results []*types.Order
	if err := q.Order(`"order"."order_date"`).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RevenueSum is a live aggregate, recomputed on every call. It is distinct
// from Order.TotalAmount, which is frozen at order creation.
func (or *orderRepo) RevenueSum(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
