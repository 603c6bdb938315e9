package dto

// MoneyRequest carries a price as text so no precision is lost in transit.
type MoneyRequest struct {
	Amount   string `json:"amount" example:"100.00"`
	Currency string `json:"currency" binding:"omitempty,iso4217" example:"USD"`
}

type CreateProductRequest struct {
	Name         string       `json:"name" example:"Widget"`
	Description  string       `json:"description" example:"A fine widget"`
	Price        MoneyRequest `json:"price"`
	InitialStock int          `json:"initial_stock" example:"10"`
}

type UpdateProductRequest struct {
	Name        string       `json:"name" example:"Widget"`
	Description string       `json:"description" example:"A finer widget"`
	Price       MoneyRequest `json:"price"`
}

type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required" example:"-3"`
}
