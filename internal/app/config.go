package app

import (
	"strings"

	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/utils"
)

type Config struct {
	Port          string
	AllowOrigins  []string
	LowStockLimit int
	RestockAmount int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080", log)
	lowStockLimit := utils.GetEnvAsInt("LOW_STOCK_LIMIT", 10, log)
	restockAmount := utils.GetEnvAsInt("RESTOCK_AMOUNT", 10, log)
	return Config{
		Port:          port,
		AllowOrigins:  strings.Split(origins, ","),
		LowStockLimit: lowStockLimit,
		RestockAmount: restockAmount,
	}
}
