package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Money fields serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

// InvoiceLineItem is a pricing snapshot frozen at invoice creation.
// Rate is the item's unit price at that instant and Amount is always
// Quantity x Rate; neither is recomputed when the catalog changes.
// Line items exist only inside their parent invoice.
type InvoiceLineItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	InvoiceID string          `gorm:"size:36;not null;index" json:"-"`
	ItemID    string          `gorm:"size:36;not null" json:"item"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Rate      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
}

// TableName overrides the table name
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// Invoice is an immutable financial record: totals and line items are
// written once at creation and never mutated. Only Status may change.
type Invoice struct {
	ID         string            `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	CustomerID string            `gorm:"size:36;not null;index" json:"customer"`
	Items      []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	SubTotal   decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"subTotal"`
	TaxTotal   decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"taxTotal"`
	GrandTotal decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"grandTotal"`
	Status     string            `gorm:"size:20;default:'draft'" json:"status"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return nil
}
