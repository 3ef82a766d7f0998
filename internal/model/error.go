package model

// Standard error codes for API responses
const (
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOrderItemNotFound = "ORDER_ITEM_NOT_FOUND"
	ErrCodeEmailInUse        = "EMAIL_IN_USE"
	ErrCodeCategoryInUse     = "CATEGORY_IN_USE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeOrderNotPending   = "ORDER_NOT_PENDING"
	ErrCodeIncorrectPassword = "INCORRECT_PASSWORD"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business error with a machine-readable code. Handlers map
// codes onto HTTP statuses; infrastructure errors stay wrapped instead.
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

// NewValidationError creates a field-validation error with the given detail.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrUserNotFound      = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderItemNotFound = NewDomainError(ErrCodeOrderItemNotFound, "Order item not found")
	ErrEmailInUse        = NewDomainError(ErrCodeEmailInUse, "Email is already registered")
	ErrCategoryInUse     = NewDomainError(ErrCodeCategoryInUse, "Category is referenced by existing products")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Not enough stock for the requested quantity")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Order status transition not permitted")
	ErrOrderNotPending   = NewDomainError(ErrCodeOrderNotPending, "Order is no longer pending")
	ErrIncorrectPassword = NewDomainError(ErrCodeIncorrectPassword, "Incorrect password")
)
