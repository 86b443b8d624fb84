package pricing

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrEmptyInvoice     = errors.New("invoice must contain items")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
)

// IsValidationError reports whether err is one of the client-caused
// failures, as opposed to a storage fault.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrEmptyInvoice) ||
		errors.Is(err, ErrInvalidQuantity)
}
