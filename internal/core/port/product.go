package port

import (
	"context"

	"github.com/newmandigital/catalog/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// ProductPort is the storage side of the catalog. Writes record the given
// event in the outbox using the same context, so callers that need atomicity
// run them inside TransactionManager.WithTransaction.
type ProductPort interface {
	Create(ctx context.Context, product *domain.Product, event domain.Event) error
	GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	GetAll(ctx context.Context, limit, offset int64) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product, event domain.Event) error
	Delete(ctx context.Context, id domain.ProductID, event domain.Event) error
}
