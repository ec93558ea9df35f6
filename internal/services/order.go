package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/types"
)

type CreateOrderInput struct {
	CustomerID uuid.UUID   `json:"customer_id" binding:"required"`
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required"`
}

type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*types.Order, error)
	List(ctx context.Context, filter repos.OrderFilter) ([]*types.Order, error)
}

type orderService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	productRepo  repos.ProductRepo
	orderRepo    repos.OrderRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo, productRepo repos.ProductRepo, orderRepo repos.OrderRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:           db,
		log:          serviceLog,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create snapshots the referenced products' prices into TotalAmount and
// persists the order with its associations as one atomic unit.
func (os *orderService) Create(ctx context.Context, input CreateOrderInput) (*types.Order, error) {
	if len(input.ProductIDs) == 0 {
		return nil, apperrors.Validationf("An order must contain at least one product.")
	}
	uniqueIDs := dedupeIDs(input.ProductIDs)

	var created *types.Order
	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := os.customerRepo.GetByID(ctx, tx, input.CustomerID)
		if err != nil {
			return apperrors.Systemf("fetching customer: %v", err)
		}
		if customer == nil {
			return apperrors.NotFoundf("Invalid customer ID '%s'.", input.CustomerID)
		}

		products, err := os.productRepo.GetByIDs(ctx, tx, uniqueIDs)
		if err != nil {
			return apperrors.Systemf("fetching products: %v", err)
		}
		if len(products) != len(uniqueIDs) {
			return apperrors.Validationf("Invalid product ID(s) found: %s.", strings.Join(missingIDs(uniqueIDs, products), ", "))
		}

		totalAmount := decimal.Zero
		for _, p := range products {
			totalAmount = totalAmount.Add(p.Price)
		}

		order := &types.Order{
			CustomerID:  customer.ID,
			Products:    products,
			TotalAmount: totalAmount,
		}
		if _, err := os.orderRepo.Create(ctx, tx, order); err != nil {
			return apperrors.Systemf("creating order: %v", err)
		}
		order.Customer = customer
		created = order
		return nil
	}); err != nil {
		os.log.Warn("Create order failed", "error", err)
		return nil, err
	}

	return created, nil
}

func (os *orderService) List(ctx context.Context, filter repos.OrderFilter) ([]*types.Order, error) {
	orders, err := os.orderRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apperrors.Systemf("listing orders: %v", err)
	}
	return orders, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs names every requested id that did not resolve, not just the
// first one.
func missingIDs(requested []uuid.UUID, found []*types.Product) []string {
	resolved := make(map[uuid.UUID]struct{}, len(found))
	for _, p := range found {
		resolved[p.ID] = struct{}{}
	}
	missing := []string{}
	for _, id := range requested {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	sort.Strings(missing)
	return missing
}
