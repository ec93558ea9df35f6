package testutil

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/types"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	memDBSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database for one test. With TEST_POSTGRES_DSN set it
// connects to Postgres; otherwise each call opens a private in-memory SQLite
// database, so tests need no cleanup between them.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	var (
		db  *gorm.DB
		err error
	)
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
	} else {
		name := fmt.Sprintf("file:crmcore_test_%d?mode=memory&cache=shared", memDBSeq.Add(1))
		db, err = gorm.Open(sqlite.Open(name), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err == nil {
			// A shared-cache memory db lives as long as one connection does.
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
			} else {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	}
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}

	if err := autoMigrateAll(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	if dsn != "" {
		if err := db.Exec(`TRUNCATE TABLE "order_products", "order", "product", "customer" CASCADE`).Error; err != nil {
			tb.Fatalf("failed to reset test db: %v", err)
		}
	}
	return db
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Customer{},
		&types.Product{},
		&types.Order{},
	)
}
