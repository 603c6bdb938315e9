package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNullArgument ErrorKind = iota
	KindInvalidAmount
	KindInvalidArgument
	KindInsufficientStock
	KindDuplicateSku
	KindProductNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindNullArgument:
		return "null_argument"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindDuplicateSku:
		return "duplicate_sku"
	case KindProductNotFound:
		return "product_not_found"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

type kindedError interface {
	error
	Kind() ErrorKind
}

// KindOf reports the domain kind of err, looking through wrapped errors.
func KindOf(err error) (ErrorKind, bool) {
	var kerr kindedError
	if errors.As(err, &kerr) {
		return kerr.Kind(), true
	}
	return 0, false
}

func IsOfKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Error is an argument error raised while constructing or mutating a value.
type Error struct {
	kind    ErrorKind
	message string
}

func (e *Error) Error() string  { return e.message }
func (e *Error) Kind() ErrorKind { return e.kind }

func newNullArgumentError(message string) *Error {
	return &Error{kind: KindNullArgument, message: message}
}

func newInvalidAmountError(message string) *Error {
	return &Error{kind: KindInvalidAmount, message: message}
}

func newInvalidArgumentError(message string) *Error {
	return &Error{kind: KindInvalidArgument, message: message}
}

type InsufficientStockError struct {
	ProductID ProductID
	Stock     int
	Delta     int
}

func NewInsufficientStockError(id ProductID, stock, delta int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: id, Stock: stock, Delta: delta}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product: %s", e.ProductID)
}

func (e *InsufficientStockError) Kind() ErrorKind { return KindInsufficientStock }

// DuplicateSkuError is raised by storage when an identifier is already taken.
type DuplicateSkuError struct {
	Sku string
}

func NewDuplicateSkuError(sku string) *DuplicateSkuError {
	return &DuplicateSkuError{Sku: sku}
}

func (e *DuplicateSkuError) Error() string {
	return fmt.Sprintf("Duplicate SKU: %s", e.Sku)
}

func (e *DuplicateSkuError) Kind() ErrorKind { return KindDuplicateSku }

// ProductNotFoundError is raised by storage on a lookup miss.
type ProductNotFoundError struct {
	ID ProductID
}

func NewProductNotFoundError(id ProductID) *ProductNotFoundError {
	return &ProductNotFoundError{ID: id}
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %s", e.ID)
}

func (e *ProductNotFoundError) Kind() ErrorKind { return KindProductNotFound }
