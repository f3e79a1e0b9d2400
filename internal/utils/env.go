package utils

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv pulls a local .env file into the process environment. Its absence
// is normal outside development; configuration then comes entirely from the
// deployment environment.
func LoadEnv(logger *zap.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using process environment")
		return
	}
	logger.Info("Loaded configuration from .env")
}
