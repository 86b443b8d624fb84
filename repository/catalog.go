package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/pricing"
)

// Catalog is the gorm-backed pricing.Catalog.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) CustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := c.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (c *Catalog) ItemByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := c.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
