package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/pricing"
	"github.com/yourusername/invoicer/repository"
)

type InvoiceHandler struct {
	db     *gorm.DB
	engine *pricing.Engine
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{
		db:     db,
		engine: pricing.NewEngine(repository.NewCatalog(db)),
	}
}

type CreateInvoiceRequest struct {
	Customer string                `json:"customer" binding:"required"`
	Items    []pricing.LineRequest `json:"items"`
}

// CustomerRef is the display expansion of a customer reference.
type CustomerRef struct {
	ID           string `json:"_id"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ItemRef is the display expansion of an item reference, carrying the
// item's *current* catalog fields. The line's own rate and amount stay
// the frozen snapshot.
type ItemRef struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsTaxable bool            `json:"isTaxable"`
}

// InvoiceLineView and InvoiceView form the read model returned by the GET
// endpoints. Item and Customer hold the expanded reference when the
// catalog record still exists, or the bare identifier when it was deleted
// after the invoice was created.
type InvoiceLineView struct {
	Item     interface{}     `json:"item"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

type InvoiceView struct {
	ID         string            `json:"_id"`
	Customer   interface{}       `json:"customer"`
	Items      []InvoiceLineView `json:"items"`
	SubTotal   decimal.Decimal   `json:"subTotal"`
	TaxTotal   decimal.Decimal   `json:"taxTotal"`
	GrandTotal decimal.Decimal   `json:"grandTotal"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// CreateInvoice prices the request against the current catalog and
// persists the resulting invoice atomically: header and lines in one
// transaction, or nothing at all.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	invoice, err := h.engine.Price(c.Request.Context(), req.Customer, req.Items)
	if err != nil {
		if pricing.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create invoice"})
		}
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create invoice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created successfully",
		"data":    invoice,
	})
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var invoices []models.Invoice
	err := h.db.WithContext(c.Request.Context()).
		Preload("Items", lineOrder).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch invoices"})
		return
	}

	views, err := h.expand(c.Request.Context(), invoices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid invoice ID"})
		return
	}

	var invoice models.Invoice
	err := h.db.WithContext(c.Request.Context()).
		Preload("Items", lineOrder).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
		return
	}

	views, err := h.expand(c.Request.Context(), []models.Invoice{invoice})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch invoice"})
		return
	}

	c.JSON(http.StatusOK, views[0])
}

// lineOrder keeps line items in their original input order.
func lineOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("invoice_line_items.id ASC")
}

// expand assembles the read model: customer and item references are
// resolved against the catalog as it is now, with one batch query per
// entity type. It only decorates; the persisted snapshots pass through
// untouched.
func (h *InvoiceHandler) expand(ctx context.Context, invoices []models.Invoice) ([]InvoiceView, error) {
	customerIDs := make([]string, 0, len(invoices))
	itemIDs := make([]string, 0)
	seenCustomer := make(map[string]bool)
	seenItem := make(map[string]bool)

	for _, inv := range invoices {
		if !seenCustomer[inv.CustomerID] {
			seenCustomer[inv.CustomerID] = true
			customerIDs = append(customerIDs, inv.CustomerID)
		}
		for _, line := range inv.Items {
			if !seenItem[line.ItemID] {
				seenItem[line.ItemID] = true
				itemIDs = append(itemIDs, line.ItemID)
			}
		}
	}

	customerRefs := make(map[string]*CustomerRef)
	if len(customerIDs) > 0 {
		var customers []models.Customer
		if err := h.db.WithContext(ctx).Where("id IN ?", customerIDs).Find(&customers).Error; err != nil {
			return nil, err
		}
		for i := range customers {
			cust := customers[i]
			customerRefs[cust.ID] = &CustomerRef{
				ID:           cust.ID,
				CustomerName: cust.CustomerName,
				Email:        cust.Email,
				Phone:        cust.Phone,
			}
		}
	}

	itemRefs := make(map[string]*ItemRef)
	if len(itemIDs) > 0 {
		var items []models.Item
		if err := h.db.WithContext(ctx).Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return nil, err
		}
		for i := range items {
			item := items[i]
			itemRefs[item.ID] = &ItemRef{
				ID:        item.ID,
				Name:      item.Name,
				Rate:      item.Rate,
				IsTaxable: item.IsTaxable,
			}
		}
	}

	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		view := InvoiceView{
			ID:         inv.ID,
			Customer:   inv.CustomerID,
			Items:      make([]InvoiceLineView, 0, len(inv.Items)),
			SubTotal:   inv.SubTotal,
			TaxTotal:   inv.TaxTotal,
			GrandTotal: inv.GrandTotal,
			Status:     inv.Status,
			CreatedAt:  inv.CreatedAt,
			UpdatedAt:  inv.UpdatedAt,
		}
		if ref, ok := customerRefs[inv.CustomerID]; ok {
			view.Customer = ref
		}
		for _, line := range inv.Items {
			lineView := InvoiceLineView{
				Item:     line.ItemID,
				Quantity: line.Quantity,
				Rate:     line.Rate,
				Amount:   line.Amount,
			}
			if ref, ok := itemRefs[line.ItemID]; ok {
				lineView.Item = ref
			}
			view.Items = append(view.Items, lineView)
		}
		views = append(views, view)
	}

	return views, nil
}
