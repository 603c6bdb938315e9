package domain

import (
	"encoding/json"
	"math"
	"strings"
)

// Product is the catalog aggregate. Its name is never blank and its stock
// never negative once it has been created through CreateProduct.
type Product struct {
	id          ProductID
	name        string
	description string
	price       Money
	stock       int
}

func CreateProduct(name, description string, price Money) (*Product, error) {
	if err := validateDetails(name, price); err != nil {
		return nil, err
	}

	return &Product{
		id:          GenerateProductID(),
		name:        name,
		description: description,
		price:       price,
	}, nil
}

// ReconstituteProduct rebuilds a product from state that was valid when it
// was stored. Nothing is checked here.
func ReconstituteProduct(id ProductID, name, description string, price Money, stock int) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
	}
}

func (p *Product) ID() ProductID       { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Price() Money        { return p.price }
func (p *Product) Stock() int          { return p.stock }

// AdjustStock applies a receipt (positive delta) or a sale (negative delta).
// A receipt that would push stock past math.MaxInt is rejected as an invalid
// argument and leaves stock unchanged.
func (p *Product) AdjustStock(delta int) error {
	if delta > 0 && p.stock > math.MaxInt-delta {
		return newInvalidArgumentError("Stock adjustment overflows for product: " + p.id.String())
	}
	if p.stock+delta < 0 {
		return NewInsufficientStockError(p.id, p.stock, delta)
	}

	p.stock += delta
	return nil
}

func (p *Product) UpdateDetails(name, description string, price Money) error {
	if err := validateDetails(name, price); err != nil {
		return err
	}

	p.name = name
	p.description = description
	p.price = price
	return nil
}

func validateDetails(name string, price Money) error {
	if strings.TrimSpace(name) == "" {
		return newInvalidArgumentError("Product name cannot be blank")
	}
	if price.IsZero() {
		return newNullArgumentError("Price cannot be null")
	}
	return nil
}

type productJSON struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	Stock       int       `json:"stock"`
}

func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		Stock:       p.stock,
	})
}

// UnmarshalJSON rehydrates a snapshot produced by MarshalJSON.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = *ReconstituteProduct(raw.ID, raw.Name, raw.Description, raw.Price, raw.Stock)
	return nil
}
