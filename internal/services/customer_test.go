package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/repos/testutil"
)

func newCustomerService(t *testing.T) (CustomerService, repos.CustomerRepo, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	customerRepo := repos.NewCustomerRepo(db, log)
	return NewCustomerService(db, log, customerRepo), customerRepo, db
}

func TestCreateCustomer(t *testing.T) {
	svc, _, _ := newCustomerService(t)
	ctx := context.Background()

	customer, message, err := svc.Create(ctx, CreateCustomerInput{
		Name:  "Alice Smith",
		Email: "alice@example.com",
		Phone: "+1 555 123 4567",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if message != "Customer created successfully." {
		t.Fatalf("message: %q", message)
	}

	got, err := svc.Get(ctx, customer.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != customer.Name || got.Email != customer.Email || got.Phone != customer.Phone {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, customer)
	}
}

func TestCreateCustomerRejections(t *testing.T) {
	svc, customerRepo, _ := newCustomerService(t)
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, CreateCustomerInput{Name: "X", Email: "not-an-email"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("bad email: expected validation error, got %v", err)
	}
	if _, _, err := svc.Create(ctx, CreateCustomerInput{Name: "X", Email: "x@example.com", Phone: "phone"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("bad phone: expected validation error, got %v", err)
	}

	if _, _, err := svc.Create(ctx, CreateCustomerInput{Name: "Bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := svc.Create(ctx, CreateCustomerInput{Name: "Bob Again", Email: "bob@example.com"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate email: expected conflict, got %v", err)
	}

	// Failed creates leave no partial writes.
	count, err := customerRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted customer, got %d", count)
	}
}

func TestBulkCreateCustomers(t *testing.T) {
	svc, customerRepo, _ := newCustomerService(t)
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, CreateCustomerInput{Name: "Bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	created, recordErrors, err := svc.BulkCreate(ctx, []CreateCustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob Again", Email: "bob@example.com"},
		{Name: "Carol", Email: "carol@example.com", Phone: "123-456-7890"},
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(created) != 2 || created[0].Email != "alice@example.com" || created[1].Email != "carol@example.com" {
		t.Fatalf("created: %+v", created)
	}
	if len(recordErrors) != 1 {
		t.Fatalf("errors: %v", recordErrors)
	}
	want := "Record 1 (Email: bob@example.com) failed validation: Email already exists in database."
	if recordErrors[0] != want {
		t.Fatalf("error text:\n got: %s\nwant: %s", recordErrors[0], want)
	}

	// The duplicate record must not be persisted twice.
	count, err := customerRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 persisted customers, got %d", count)
	}
}

func TestBulkCreateCustomersInBatchDuplicate(t *testing.T) {
	svc, _, _ := newCustomerService(t)
	ctx := context.Background()

	created, recordErrors, err := svc.BulkCreate(ctx, []CreateCustomerInput{
		{Name: "Dana", Email: "dana@example.com"},
		{Name: "Dana Two", Email: "dana@example.com"},
		{Name: "Bad", Email: "nope"},
		{Name: "Eve", Email: "eve@example.com", Phone: "not a phone"},
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(created) != 1 || created[0].Email != "dana@example.com" {
		t.Fatalf("created: %+v", created)
	}
	if len(recordErrors) != 3 {
		t.Fatalf("errors: %v", recordErrors)
	}
	if !strings.Contains(recordErrors[0], "Record 1 (Email: dana@example.com) failed validation: Duplicate email in current batch.") {
		t.Fatalf("in-batch duplicate text: %s", recordErrors[0])
	}
	if !strings.Contains(recordErrors[1], "Record 2 (Email: nope) failed validation:") {
		t.Fatalf("bad email text: %s", recordErrors[1])
	}
	if !strings.Contains(recordErrors[2], "Record 3 (Email: eve@example.com) failed validation:") {
		t.Fatalf("bad phone text: %s", recordErrors[2])
	}
}

func TestGetCustomerMiss(t *testing.T) {
	svc, _, _ := newCustomerService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
