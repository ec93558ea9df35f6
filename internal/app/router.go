package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/crmcore-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		CustomerHandler: handlerset.Customer,
		ProductHandler:  handlerset.Product,
		OrderHandler:    handlerset.Order,
		ReportHandler:   handlerset.Report,
		AllowOrigins:    cfg.AllowOrigins,
	})
}
