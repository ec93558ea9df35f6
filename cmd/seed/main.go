package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/db"
	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/services"
	"github.com/yungbote/crmcore-backend/internal/types"
)

// Seeds the store with sample CRM data. Existing rows are cleared first so
// the command is idempotent.
func main() {
	if err := run(); err != nil {
		fmt.Printf("Seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbService, err := db.NewService(log)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return fmt.Errorf("db automigrate: %w", err)
	}
	theDB := dbService.DB()

	ctx := context.Background()
	customerRepo := repos.NewCustomerRepo(theDB, log)
	productRepo := repos.NewProductRepo(theDB, log)
	orderRepo := repos.NewOrderRepo(theDB, log)
	orderService := services.NewOrderService(theDB, log, customerRepo, productRepo, orderRepo)

	log.Info("Clearing existing data...")
	for _, table := range []string{`"order_products"`, `"order"`, `"product"`, `"customer"`} {
		if err := theDB.Exec(`DELETE FROM ` + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	customers := []*types.Customer{
		{Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1234567890"},
		{Name: "Bob Smith", Email: "bob@example.com", Phone: "123-456-7890"},
		{Name: "Carol King", Email: "carol@example.com"},
	}
	products := []*types.Product{
		{Name: "Laptop Pro", Price: decimal.RequireFromString("1200.00"), Stock: 10},
		{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("99.99"), Stock: 50},
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("25.50"), Stock: 100},
	}

	if err := theDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := customerRepo.Create(ctx, tx, customers); err != nil {
			return fmt.Errorf("seeding customers: %w", err)
		}
		if _, err := productRepo.Create(ctx, tx, products); err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	for _, c := range customers {
		log.Info("Created customer", "name", c.Name)
	}
	for _, p := range products {
		log.Info("Created product", "name", p.Name, "id", p.ID)
	}

	// One sample order through the service so the total is snapshotted the
	// same way the API does it.
	order, err := orderService.Create(ctx, services.CreateOrderInput{
		CustomerID: customers[0].ID,
		ProductIDs: []uuid.UUID{products[0].ID, products[2].ID},
	})
	if err != nil {
		return fmt.Errorf("seeding order: %w", err)
	}
	log.Info("Created order", "id", order.ID, "customer", order.Customer.Name, "total", order.TotalAmount.StringFixed(2))

	log.Info("Database seeding complete")
	return nil
}
