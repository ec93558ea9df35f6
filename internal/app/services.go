package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/services"
)

type Services struct {
	Customer services.CustomerService
	Product  services.ProductService
	Order    services.OrderService
	Report   services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Customer: services.NewCustomerService(db, log, reposet.Customer),
		Product:  services.NewProductService(db, log, reposet.Product, cfg.LowStockLimit, cfg.RestockAmount),
		Order:    services.NewOrderService(db, log, reposet.Customer, reposet.Product, reposet.Order),
		Report:   services.NewReportService(db, log, reposet.Customer, reposet.Order),
	}
}
