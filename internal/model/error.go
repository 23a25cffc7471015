package model

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCartNotFound      = "CART_NOT_FOUND"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeCartConflict      = "CART_CONFLICT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code that the HTTP
// layer maps to a status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidItemRequest  = NewDomainError(ErrCodeValidation, "Product ID and valid quantity are required")
	ErrInvalidQuantity     = NewDomainError(ErrCodeValidation, "Valid quantity is required")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartNotFound        = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrItemNotFound        = NewDomainError(ErrCodeItemNotFound, "Item not found in cart")
	ErrInsufficientStock   = NewDomainError(ErrCodeInsufficientStock, "Insufficient stock")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrMissingCustomerInfo = NewDomainError(ErrCodeValidation, "Customer name and email are required")
	ErrInvalidEmail        = NewDomainError(ErrCodeValidation, "Invalid email format")
	ErrCartConflict        = NewDomainError(ErrCodeCartConflict, "Cart was modified by another request")
)
