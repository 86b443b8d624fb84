// Package pricing resolves invoice line requests against the catalog and
// computes the invoice totals. It only ever reads the catalog; persisting
// the result is the caller's job.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yourusername/invoicer/models"
)

// TaxRatePercent is the flat tax applied to every taxable line.
const TaxRatePercent = 18

// Catalog is the read-only view of customers and items the engine prices
// against. Implementations return ErrCustomerNotFound / ErrItemNotFound
// for unknown identifiers.
type Catalog interface {
	CustomerByID(ctx context.Context, id string) (*models.Customer, error)
	ItemByID(ctx context.Context, id string) (*models.Item, error)
}

// LineRequest is one (item, quantity) entry of an invoice request.
type LineRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Price validates the request and builds an unsaved Invoice with each
// line's rate and taxability snapshotted from the catalog as it is right
// now. Validation is first-failure-wins: customer, then empty request,
// then per line the item reference before its quantity. All arithmetic is
// exact decimal.
func (e *Engine) Price(ctx context.Context, customerID string, lines []LineRequest) (*models.Invoice, error) {
	if _, err := e.catalog.CustomerByID(ctx, customerID); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrEmptyInvoice
	}

	taxRate := decimal.NewFromInt(TaxRatePercent).Div(decimal.NewFromInt(100))

	items := make([]models.InvoiceLineItem, 0, len(lines))
	subTotal := decimal.Zero
	taxTotal := decimal.Zero

	for _, line := range lines {
		item, err := e.catalog.ItemByID(ctx, line.Item)
		if err != nil {
			return nil, err
		}
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		amount := item.Rate.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if item.IsTaxable {
			taxTotal = taxTotal.Add(amount.Mul(taxRate))
		}
		subTotal = subTotal.Add(amount)

		items = append(items, models.InvoiceLineItem{
			ItemID:   item.ID,
			Quantity: line.Quantity,
			Rate:     item.Rate,
			Amount:   amount,
		})
	}

	return &models.Invoice{
		CustomerID: customerID,
		Items:      items,
		SubTotal:   subTotal,
		TaxTotal:   taxTotal,
		GrandTotal: subTotal.Add(taxTotal),
		Status:     models.InvoiceStatusDraft,
	}, nil
}
