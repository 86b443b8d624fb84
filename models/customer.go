package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID             string         `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CustomerNumber int64          `gorm:"uniqueIndex;not null" json:"customerNumber"`
	CustomerName   string         `gorm:"size:255;not null" json:"customerName"`
	Email          string         `gorm:"size:255" json:"email,omitempty"`
	Phone          string         `gorm:"size:20" json:"phone,omitempty"`
	CreditLimit    int64          `gorm:"not null;default:0" json:"creditLimit"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
