package app

import (
	"github.com/yungbote/crmcore-backend/internal/handlers"
	"github.com/yungbote/crmcore-backend/internal/logger"
)

type Handlers struct {
	Customer *handlers.CustomerHandler
	Product  *handlers.ProductHandler
	Order    *handlers.OrderHandler
	Report   *handlers.ReportHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Customer: handlers.NewCustomerHandler(serviceset.Customer),
		Product:  handlers.NewProductHandler(serviceset.Product),
		Order:    handlers.NewOrderHandler(serviceset.Order),
		Report:   handlers.NewReportHandler(serviceset.Report),
	}
}
