package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/types"
	"github.com/yungbote/crmcore-backend/internal/validate"
)

type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*types.Customer, string, error)
	BulkCreate(ctx context.Context, inputs []CreateCustomerInput) ([]*types.Customer, []string, error)
	List(ctx context.Context, filter repos.CustomerFilter) ([]*types.Customer, error)
	Get(ctx context.Context, customerID uuid.UUID) (*types.Customer, error)
}

type customerService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
}

func NewCustomerService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo) CustomerService {
	serviceLog := log.With("service", "CustomerService")
	return &customerService{db: db, log: serviceLog, customerRepo: customerRepo}
}

func (cs *customerService) Create(ctx context.Context, input CreateCustomerInput) (*types.Customer, string, error) {
	if err := validate.Email(input.Email); err != nil {
		return nil, "", err
	}
	if err := validate.Phone(input.Phone); err != nil {
		return nil, "", err
	}

	var created *types.Customer
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := cs.customerRepo.EmailExists(ctx, tx, input.Email)
		if err != nil {
			return apperrors.Systemf("checking email uniqueness: %v", err)
		}
		if exists {
			return apperrors.Conflictf("Email already exists.")
		}

		customer := &types.Customer{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		}
		if _, err := cs.customerRepo.Create(ctx, tx, []*types.Customer{customer}); err != nil {
			return apperrors.Systemf("creating customer: %v", err)
		}
		created = customer
		return nil
	}); err != nil {
		cs.log.Warn("Create customer failed", "error", err)
		return nil, "", err
	}

	return created, "Customer created successfully.", nil
}

// BulkCreate runs the whole batch in one transaction but records per-record
// validation and insert failures instead of aborting; each insert sits behind
// a savepoint so a failed record cannot poison the outer transaction. Only an
// infrastructure fault rolls back everything written so far.
//
// A concurrent request creating the same email between the batch's email
// snapshot and commit is not closed here; the store's unique constraint
// rejects that one record and it is reported as a creation failure.
func (cs *customerService) BulkCreate(ctx context.Context, inputs []CreateCustomerInput) ([]*types.Customer, []string, error) {
	createdCustomers := []*types.Customer{}
	validationErrors := []string{}

	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.customerRepo.ListEmails(ctx, tx)
		if err != nil {
			return apperrors.Systemf("loading existing emails: %v", err)
		}
		existingEmails := make(map[string]struct{}, len(existing))
		for _, email := range existing {
			existingEmails[email] = struct{}{}
		}
		emailsInBatch := make(map[string]struct{}, len(inputs))

		for i, input := range inputs {
			if err := validateBulkRecord(input, existingEmails, emailsInBatch); err != nil {
				validationErrors = append(validationErrors,
					fmt.Sprintf("Record %d (Email: %s) failed validation: %s", i, input.Email, apperrors.Message(err)))
				continue
			}

			customer := &types.Customer{
				Name:  input.Name,
				Email: input.Email,
				Phone: input.Phone,
			}
			if err := tx.Transaction(func(inner *gorm.DB) error {
				_, createErr := cs.customerRepo.Create(ctx, inner, []*types.Customer{customer})
				return createErr
			}); err != nil {
				validationErrors = append(validationErrors,
					fmt.Sprintf("Record %d (Email: %s) failed creation: %v", i, input.Email, err))
				continue
			}

			emailsInBatch[input.Email] = struct{}{}
			createdCustomers = append(createdCustomers, customer)
		}
		return nil
	}); err != nil {
		cs.log.Error("Bulk create customers aborted", "error", err)
		return nil, nil, err
	}

	cs.log.Info("Bulk create customers finished", "created", len(createdCustomers), "failed", len(validationErrors))
	return createdCustomers, validationErrors, nil
}

// validateBulkRecord distinguishes an email taken before the batch started
// from one claimed earlier in the same batch.
func validateBulkRecord(input CreateCustomerInput, existingEmails, emailsInBatch map[string]struct{}) error {
	if err := validate.Email(input.Email); err != nil {
		return err
	}
	if _, taken := existingEmails[input.Email]; taken {
		return apperrors.Conflictf("Email already exists in database.")
	}
	if _, taken := emailsInBatch[input.Email]; taken {
		return apperrors.Conflictf("Duplicate email in current batch.")
	}
	return validate.Phone(input.Phone)
}

func (cs *customerService) List(ctx context.Context, filter repos.CustomerFilter) ([]*types.Customer, error) {
	customers, err := cs.customerRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apperrors.Systemf("listing customers: %v", err)
	}
	return customers, nil
}

// Get resolves a customer by id, returning ErrNotFound on a miss so the
// handler can render a typed null instead of failing.
func (cs *customerService) Get(ctx context.Context, customerID uuid.UUID) (*types.Customer, error) {
	customer, err := cs.customerRepo.GetByID(ctx, nil, customerID)
	if err != nil {
		return nil, apperrors.Systemf("fetching customer: %v", err)
	}
	if customer == nil {
		return nil, apperrors.NotFoundf("Customer '%s' does not exist.", customerID)
	}
	return customer, nil
}
