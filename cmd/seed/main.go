// Command seed wipes and repopulates the catalog with sample customers
// and items for local development.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/yourusername/invoicer/config"
	"github.com/yourusername/invoicer/logger"
	"github.com/yourusername/invoicer/models"
)

func item(name string, rate int64) models.Item {
	return models.Item{Name: name, Rate: decimal.NewFromInt(rate), Unit: "pcs", IsTaxable: true}
}

var sampleItems = []models.Item{
	item("USB Keyboard", 750),
	item("USB Mouse", 350),
	item("USB Cable", 150),
	item("USB Flash Drive 16GB", 450),
	item("USB Flash Drive 32GB", 650),
	item("USB Hub", 850),
	item("Wireless Mouse", 550),
	item("Wireless Keyboard", 1200),
	item("HDMI Cable", 300),
	item("Ethernet Cable", 200),
	item("Laptop Stand", 1500),
	item("Monitor Stand", 2000),
	item("Webcam", 2500),
	item("Microphone", 1800),
	item("Headphones", 2200),
	item("USB-C Adapter", 800),
	item("Power Bank", 1500),
	item("Phone Charger", 400),
	item("Laptop Charger", 2500),
	item("USB Extension Cable", 250),
	item("USB 3.0 Cable", 350),
	item("USB-C Cable", 500),
	item("USB OTG Cable", 200),
	item("USB Sound Card", 600),
	item("USB WiFi Adapter", 900),
}

var sampleCustomers = []models.Customer{
	{CustomerNumber: 1001, CustomerName: "Acme Traders", Email: "accounts@acme.example", Phone: "9876543210", CreditLimit: 50000},
	{CustomerNumber: 1002, CustomerName: "Blue Ocean Retail", Email: "billing@blueocean.example", Phone: "9876501234", CreditLimit: 25000},
	{CustomerNumber: 1003, CustomerName: "Cosmic Components", Email: "finance@cosmic.example", Phone: "9812345678", CreditLimit: 75000},
	{CustomerNumber: 1004, CustomerName: "Delta Distributors", Email: "ap@delta.example", Phone: "9898989898", CreditLimit: 100000},
	{CustomerNumber: 1005, CustomerName: "Evergreen Supplies", Email: "pay@evergreen.example", Phone: "9765432109", CreditLimit: 10000},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.Setup(cfg.LogLevel, "console")

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.Unscoped().Where("1 = 1").Delete(&models.Item{}).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to clear items")
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to clear customers")
	}

	if err := db.Create(&sampleItems).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to seed items")
	}
	log.Info().Int("count", len(sampleItems)).Msg("Seeded items")

	if err := db.Create(&sampleCustomers).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to seed customers")
	}
	log.Info().Int("count", len(sampleCustomers)).Msg("Seeded customers")
}
