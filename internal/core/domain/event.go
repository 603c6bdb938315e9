package domain

import "time"

const productEntityName = "product"

type Event interface {
	GetName() string
	GetEntityName() string
}

type ProductCreatedEvent struct {
	ProductID   ProductID `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductCreatedEvent(p *Product, createdAt time.Time) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID:   p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		CreatedAt:   createdAt,
	}
}

func (e *ProductCreatedEvent) GetName() string       { return "product.created" }
func (e *ProductCreatedEvent) GetEntityName() string { return productEntityName }

type ProductStockAdjustedEvent struct {
	ProductID  ProductID `json:"product_id"`
	Delta      int       `json:"delta"`
	OldStock   int       `json:"old_stock"`
	NewStock   int       `json:"new_stock"`
	AdjustedAt time.Time `json:"adjusted_at"`
}

func NewProductStockAdjustedEvent(id ProductID, delta, oldStock, newStock int, adjustedAt time.Time) *ProductStockAdjustedEvent {
	return &ProductStockAdjustedEvent{
		ProductID:  id,
		Delta:      delta,
		OldStock:   oldStock,
		NewStock:   newStock,
		AdjustedAt: adjustedAt,
	}
}

func (e *ProductStockAdjustedEvent) GetName() string       { return "product.stock_adjusted" }
func (e *ProductStockAdjustedEvent) GetEntityName() string { return productEntityName }

type ProductDetailsUpdatedEvent struct {
	ProductID   ProductID `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProductDetailsUpdatedEvent(p *Product, updatedAt time.Time) *ProductDetailsUpdatedEvent {
	return &ProductDetailsUpdatedEvent{
		ProductID:   p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		UpdatedAt:   updatedAt,
	}
}

func (e *ProductDetailsUpdatedEvent) GetName() string       { return "product.details_updated" }
func (e *ProductDetailsUpdatedEvent) GetEntityName() string { return productEntityName }

type ProductDeletedEvent struct {
	ProductID ProductID `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func NewProductDeletedEvent(id ProductID, deletedAt time.Time) *ProductDeletedEvent {
	return &ProductDeletedEvent{ProductID: id, DeletedAt: deletedAt}
}

func (e *ProductDeletedEvent) GetName() string       { return "product.deleted" }
func (e *ProductDeletedEvent) GetEntityName() string { return productEntityName }
