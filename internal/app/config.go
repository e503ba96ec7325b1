package app

import (
	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/utils"
)

type Config struct {
	Port string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	return Config{
		Port: port,
	}
}
