package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type ProductID struct {
	value uuid.UUID
}

func GenerateProductID() ProductID {
	return ProductID{value: uuid.New()}
}

// ProductIDOf wraps an identifier issued elsewhere, typically by storage.
// uuid.Nil is rejected as an absent value.
func ProductIDOf(value uuid.UUID) (ProductID, error) {
	if value == uuid.Nil {
		return ProductID{}, newNullArgumentError("Product id cannot be null")
	}
	return ProductID{value: value}, nil
}

func ParseProductID(s string) (ProductID, error) {
	if s == "" {
		return ProductID{}, newNullArgumentError("Product id cannot be null")
	}
	value, err := uuid.Parse(s)
	if err != nil {
		return ProductID{}, newInvalidArgumentError(fmt.Sprintf("Invalid product id: %q", s))
	}
	return ProductIDOf(value)
}

func (id ProductID) Value() uuid.UUID { return id.value }
func (id ProductID) String() string   { return id.value.String() }
func (id ProductID) IsZero() bool     { return id.value == uuid.Nil }

func (id ProductID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ProductID) UnmarshalText(text []byte) error {
	parsed, err := ParseProductID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
