package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	JWTRefreshSecret   string
	LogLevel           string
	LogFormat          string
	RateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	rateLimit, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_PER_MINUTE", "50"))
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}

	return &Config{
		Port:               os.Getenv("PORT"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "dev-secret"),
		JWTRefreshSecret:   getEnvOrDefault("JWT_REFRESH_SECRET", "dev-refresh-secret"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "json"),
		RateLimitPerMinute: rateLimit,
	}, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Item{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
