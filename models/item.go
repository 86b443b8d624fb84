package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a catalog entry. Rate and IsTaxable are the current catalog
// truth; invoices snapshot them at creation time and are unaffected by
// later changes here.
type Item struct {
	ID        string          `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	Name      string          `gorm:"size:255;not null;index" json:"name"`
	Rate      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	Unit      string          `gorm:"size:20;not null" json:"unit"`
	IsTaxable bool            `gorm:"not null" json:"isTaxable"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "items"
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
