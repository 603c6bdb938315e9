package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newmandigital/catalog/internal/adapters/mongo/document"
	"github.com/newmandigital/catalog/internal/adapters/outbox"
	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

// ProductRepository stores products and records their events in the outbox
// with the caller's context. Run writes inside TransactionManager to make the
// two atomic.
type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	collection *mongo.Collection
	outbox     outbox.Repository
}

func NewProductRepository(db *mongo.Database, outbox outbox.Repository) port.ProductPort {
	repo := &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, productsCollection),
		collection:     db.Collection(productsCollection),
		outbox:         outbox,
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": productsCollection,
		})
	}

	return repo
}

func (r *ProductRepository) createIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product, event domain.Event) error {
	doc, err := document.ToProductDocument(product, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := r.Insert(ctx, doc); err != nil {
		if errors.Is(err, errDuplicateKey) {
			return domain.NewDuplicateSkuError(product.ID().String())
		}
		return fmt.Errorf("insert product %s: %w", product.ID(), err)
	}

	return r.record(ctx, event)
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}

	return doc.ToDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context, limit, offset int64) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// Save overwrites the mutable state of an existing product.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product, event domain.Event) error {
	doc, err := document.ToProductDocument(product, time.Now().UTC())
	if err != nil {
		return err
	}

	err = r.Update(ctx, doc.ID, bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"price":       doc.Price,
		"currency":    doc.Currency,
		"stock":       doc.Stock,
		"updated_at":  doc.UpdatedAt,
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return domain.NewProductNotFoundError(product.ID())
		}
		return fmt.Errorf("save product %s: %w", product.ID(), err)
	}

	return r.record(ctx, event)
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ProductID, event domain.Event) error {
	if err := r.DeleteByID(ctx, id.String()); err != nil {
		if errors.Is(err, errNotFound) {
			return domain.NewProductNotFoundError(id)
		}
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	return r.record(ctx, event)
}

func (r *ProductRepository) record(ctx context.Context, event domain.Event) error {
	if event == nil {
		return nil
	}

	entry, err := outbox.NewEntry(event)
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, entry); err != nil {
		return fmt.Errorf("outbox insert %s: %w", event.GetName(), err)
	}
	return nil
}
