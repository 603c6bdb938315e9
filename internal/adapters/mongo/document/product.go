package document

import (
	"fmt"
	"time"

	"github.com/newmandigital/catalog/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductDocument keeps the price as Decimal128 so amounts round-trip with
// their scale intact.
type ProductDocument struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Currency    string               `bson:"currency"`
	Stock       int                  `bson:"stock"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (doc ProductDocument) GetID() string {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() (*domain.Product, error) {
	id, err := domain.ParseProductID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("product document %q: %w", doc.ID, err)
	}

	price, err := domain.ParseMoney(doc.Price.String(), doc.Currency)
	if err != nil {
		return nil, fmt.Errorf("product document %q: %w", doc.ID, err)
	}

	return domain.ReconstituteProduct(id, doc.Name, doc.Description, price, doc.Stock), nil
}

func ToProductDocument(p *domain.Product, now time.Time) (*ProductDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price().AmountString())
	if err != nil {
		return nil, fmt.Errorf("product %s: encode price: %w", p.ID(), err)
	}

	return &ProductDocument{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       price,
		Currency:    p.Price().Currency().String(),
		Stock:       p.Stock(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
