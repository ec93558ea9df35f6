package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/types"
	"github.com/yungbote/crmcore-backend/internal/utils"
)

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

// NewService connects to the store. Postgres is the default; DB_DRIVER=sqlite
// switches to an embedded file database for local development.
func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

	var (
		theDB *gorm.DB
		err   error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "crmcore.db", log)
		log.Info("Connecting to SQLite...", "path", path)
		theDB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Error("Failed to connect to SQLite", "error", err)
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
	default:
		driver = "postgres"
		postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
		postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
		postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		postgresName := utils.GetEnv("POSTGRES_NAME", "crmcore", log)

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

		log.Info("Connecting to Postgres...")
		theDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Error("Failed to connect to Postgres", "error", err)
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	return &Service{db: theDB, driver: driver, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.Customer{},
		&types.Product{},
		&types.Order{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	if s.driver != "postgres" {
		return nil
	}

	s.log.Info("Configuring foreign key relationships...")
	if err := s.db.Exec(`
		ALTER TABLE "order"
		ADD CONSTRAINT "fk_order_customer_id"
		FOREIGN KEY ("customer_id")
		REFERENCES "customer"("id")
	`).Error; err != nil && !isDuplicateConstraint(err) {
		return fmt.Errorf("failed to add fk_order_customer_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "order_products"
		ADD CONSTRAINT "fk_order_products_order_id"
		FOREIGN KEY ("order_id")
		REFERENCES "order"("id")
		ON DELETE CASCADE
	`).Error; err != nil && !isDuplicateConstraint(err) {
		return fmt.Errorf("failed to add fk_order_products_order_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "order_products"
		ADD CONSTRAINT "fk_order_products_product_id"
		FOREIGN KEY ("product_id")
		REFERENCES "product"("id")
	`).Error; err != nil && !isDuplicateConstraint(err) {
		return fmt.Errorf("failed to add fk_order_products_product_id: %w", err)
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func isDuplicateConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}
