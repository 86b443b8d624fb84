package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/invoicer/models"
)

type fakeCatalog struct {
	customers map[string]*models.Customer
	items     map[string]*models.Item
}

func (f *fakeCatalog) CustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeCatalog) ItemByID(ctx context.Context, id string) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func newTestEngine() *Engine {
	return NewEngine(&fakeCatalog{
		customers: map[string]*models.Customer{
			"cust-1": {ID: "cust-1", CustomerNumber: 1001, CustomerName: "Acme Traders", CreditLimit: 50000},
		},
		items: map[string]*models.Item{
			"item-a": {ID: "item-a", Name: "USB Keyboard", Rate: decimal.NewFromInt(750), Unit: "pcs", IsTaxable: true},
			"item-b": {ID: "item-b", Name: "Service Charge", Rate: decimal.NewFromInt(350), Unit: "pcs", IsTaxable: false},
			"item-c": {ID: "item-c", Name: "USB Cable", Rate: decimal.RequireFromString("149.99"), Unit: "pcs", IsTaxable: true},
		},
	})
}

func TestPriceComputesTotals(t *testing.T) {
	engine := newTestEngine()

	invoice, err := engine.Price(context.Background(), "cust-1", []LineRequest{
		{Item: "item-a", Quantity: 2},
		{Item: "item-b", Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 2)

	assert.Equal(t, "item-a", invoice.Items[0].ItemID)
	assert.Equal(t, 2, invoice.Items[0].Quantity)
	assert.True(t, invoice.Items[0].Rate.Equal(decimal.NewFromInt(750)))
	assert.True(t, invoice.Items[0].Amount.Equal(decimal.NewFromInt(1500)))

	assert.Equal(t, "item-b", invoice.Items[1].ItemID)
	assert.Equal(t, 3, invoice.Items[1].Quantity)
	assert.True(t, invoice.Items[1].Rate.Equal(decimal.NewFromInt(350)))
	assert.True(t, invoice.Items[1].Amount.Equal(decimal.NewFromInt(1050)))

	assert.True(t, invoice.SubTotal.Equal(decimal.NewFromInt(2550)), "subTotal = %s", invoice.SubTotal)
	assert.True(t, invoice.TaxTotal.Equal(decimal.NewFromInt(270)), "taxTotal = %s", invoice.TaxTotal)
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromInt(2820)), "grandTotal = %s", invoice.GrandTotal)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "cust-1", invoice.CustomerID)
}

func TestPriceNonTaxableLineContributesNoTax(t *testing.T) {
	engine := newTestEngine()

	invoice, err := engine.Price(context.Background(), "cust-1", []LineRequest{
		{Item: "item-b", Quantity: 5},
	})
	require.NoError(t, err)

	assert.True(t, invoice.TaxTotal.IsZero())
	assert.True(t, invoice.GrandTotal.Equal(invoice.SubTotal))
}

func TestPriceGrandTotalIsExactSum(t *testing.T) {
	engine := newTestEngine()

	// Many fractional-rate lines must not accumulate binary float drift.
	lines := make([]LineRequest, 0, 1000)
	for i := 0; i < 1000; i++ {
		lines = append(lines, LineRequest{Item: "item-c", Quantity: 1})
	}

	invoice, err := engine.Price(context.Background(), "cust-1", lines)
	require.NoError(t, err)

	wantSub := decimal.RequireFromString("149990") // 149.99 * 1000
	wantTax := decimal.RequireFromString("26998.2")
	assert.True(t, invoice.SubTotal.Equal(wantSub), "subTotal = %s", invoice.SubTotal)
	assert.True(t, invoice.TaxTotal.Equal(wantTax), "taxTotal = %s", invoice.TaxTotal)
	assert.True(t, invoice.GrandTotal.Equal(invoice.SubTotal.Add(invoice.TaxTotal)))
}

func TestPriceCustomerNotFound(t *testing.T) {
	engine := newTestEngine()

	// Customer is checked before anything else, even an empty line list.
	_, err := engine.Price(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestPriceEmptyInvoice(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Price(context.Background(), "cust-1", []LineRequest{})
	assert.ErrorIs(t, err, ErrEmptyInvoice)
}

func TestPriceItemNotFound(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Price(context.Background(), "cust-1", []LineRequest{
		{Item: "item-a", Quantity: 1},
		{Item: "missing", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestPriceInvalidQuantity(t *testing.T) {
	engine := newTestEngine()

	for _, quantity := range []int{0, -3} {
		_, err := engine.Price(context.Background(), "cust-1", []LineRequest{
			{Item: "item-a", Quantity: quantity},
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestPricePreservesLineOrder(t *testing.T) {
	engine := newTestEngine()

	invoice, err := engine.Price(context.Background(), "cust-1", []LineRequest{
		{Item: "item-c", Quantity: 1},
		{Item: "item-a", Quantity: 1},
		{Item: "item-b", Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 3)
	assert.Equal(t, "item-c", invoice.Items[0].ItemID)
	assert.Equal(t, "item-a", invoice.Items[1].ItemID)
	assert.Equal(t, "item-b", invoice.Items[2].ItemID)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrCustomerNotFound))
	assert.True(t, IsValidationError(ErrItemNotFound))
	assert.True(t, IsValidationError(ErrEmptyInvoice))
	assert.True(t, IsValidationError(ErrInvalidQuantity))
	assert.False(t, IsValidationError(context.DeadlineExceeded))
}
