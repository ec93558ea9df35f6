package repos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/types"
)

// CustomerFilter narrows List results. Substring matches are
// case-insensitive; range bounds are inclusive.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
	PhonePrefix   string
}

type CustomerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, customers []*types.Customer) ([]*types.Customer, error)
	GetByID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) (*types.Customer, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListEmails(ctx context.Context, tx *gorm.DB) ([]string, error)
	List(ctx context.Context, tx *gorm.DB, filter CustomerFilter) ([]*types.Customer, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	repoLog := baseLog.With("repo", "CustomerRepo")
	return &customerRepo{db: db, log: repoLog}
}

func (cr *customerRepo) Create(ctx context.Context, tx *gorm.DB, customers []*types.Customer) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(customers) == 0 {
		return []*types.Customer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (cr *customerRepo) GetByID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) (*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Customer
	if err := transaction.WithContext(ctx).
		Where("id = ?", customerID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *customerRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Customer{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *customerRepo) ListEmails(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var emails []string
	if err := transaction.WithContext(ctx).
		Model(&types.Customer{}).
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (cr *customerRepo) List(ctx context.Context, tx *gorm.DB, filter CustomerFilter) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Customer{})
	if filter.NameContains != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(filter.NameContains))
	}
	if filter.EmailContains != "" {
		q = q.Where("LOWER(email) LIKE ?", containsPattern(filter.EmailContains))
	}
	if filter.CreatedAtGte != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		q = q.Where("created_at <= ?", *filter.CreatedAtLte)
	}
	if filter.PhonePrefix != "" {
		q = q.Where("phone LIKE ?", prefixPattern(filter.PhonePrefix))
	}

	var results []*types.Customer
	if err := q.Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Customer{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

func prefixPattern(value string) string {
	return value + "%"
}
