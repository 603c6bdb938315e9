package service

import (
	"context"
	"time"

	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/dto"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/port"
	"github.com/newmandigital/catalog/internal/core/serviceerrors"
)

const (
	DefaultPageLimit int64 = 50
	MaxPageLimit     int64 = 200
)

type ProductService struct {
	products     port.ProductPort
	productCache port.CachePort[domain.Product]
	idempotency  *IdempotencyService[domain.Product]
	txManager    port.TransactionManager
	cacheTTL     time.Duration
}

func NewProductService(
	products port.ProductPort,
	productCache port.CachePort[domain.Product],
	idempotency *IdempotencyService[domain.Product],
	txManager port.TransactionManager,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		products:     products,
		productCache: productCache,
		idempotency:  idempotency,
		txManager:    txManager,
		cacheTTL:     cacheTTL,
	}
}

func (s *ProductService) getCacheKey(id domain.ProductID) string {
	return "product:" + id.String()
}

// CreateProduct registers a new product. With a non-empty idempotency key a
// retried request returns the product created by the first attempt.
func (s *ProductService) CreateProduct(ctx context.Context, idempotencyKey string, request *dto.CreateProductRequest) (*domain.Product, error) {
	return s.idempotency.Do(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.Product, error) {
		return s.createProduct(ctx, request)
	})
}

func (s *ProductService) createProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	price, err := domain.ParseMoney(request.Price.Amount, request.Price.Currency)
	if err != nil {
		return nil, err
	}

	product, err := domain.CreateProduct(request.Name, request.Description, price)
	if err != nil {
		return nil, err
	}

	if request.InitialStock != 0 {
		if err := product.AdjustStock(request.InitialStock); err != nil {
			return nil, err
		}
	}

	event := domain.NewProductCreatedEvent(product, time.Now().UTC())
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.products.Create(txCtx, product, event)
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"product_id": product.ID(),
			"name":       product.Name(),
			"price":      product.Price().String(),
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{
		"product_id": product.ID(),
		"stock":      product.Stock(),
	})
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	cached, err := s.productCache.Get(ctx, s.getCacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get product failed", err, map[string]any{
			"product_id": id,
		})
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheProduct(ctx, product)
	return product, nil
}

// PageLimit maps a requested page size to the one GetAll uses: a
// non-positive limit falls back to DefaultPageLimit and anything above
// MaxPageLimit is capped.
func PageLimit(limit int64) int64 {
	switch {
	case limit <= 0:
		return DefaultPageLimit
	case limit > MaxPageLimit:
		return MaxPageLimit
	}
	return limit
}

func (s *ProductService) GetAll(ctx context.Context, limit, offset int64) ([]*domain.Product, error) {
	if offset < 0 {
		return nil, serviceerrors.NewInvalidRequestErrorf("offset must be non-negative, got %d", offset)
	}
	limit = PageLimit(limit)

	products, err := s.products.GetAll(ctx, limit, offset)
	if err != nil {
		logger.Error(ctx, "product: list failed", err, map[string]any{
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}
	return products, nil
}

// AdjustStock applies delta to the stored product. Load, mutation and save
// share one transaction, so concurrent adjustments of the same product are
// serialised by storage.
func (s *ProductService) AdjustStock(ctx context.Context, id domain.ProductID, delta int) (*domain.Product, error) {
	var product *domain.Product

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		p, err := s.products.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		oldStock := p.Stock()
		if err := p.AdjustStock(delta); err != nil {
			return err
		}

		event := domain.NewProductStockAdjustedEvent(id, delta, oldStock, p.Stock(), time.Now().UTC())
		if err := s.products.Save(txCtx, p, event); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product: adjust stock failed", err, map[string]any{
			"product_id": id,
			"delta":      delta,
		})
		return nil, err
	}

	s.evictProduct(ctx, id)

	logger.Info(ctx, "Product stock adjusted", map[string]any{
		"product_id": id,
		"delta":      delta,
		"stock":      product.Stock(),
	})
	return product, nil
}

func (s *ProductService) UpdateDetails(ctx context.Context, id domain.ProductID, request *dto.UpdateProductRequest) (*domain.Product, error) {
	price, err := domain.ParseMoney(request.Price.Amount, request.Price.Currency)
	if err != nil {
		return nil, err
	}

	var product *domain.Product
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		p, err := s.products.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := p.UpdateDetails(request.Name, request.Description, price); err != nil {
			return err
		}
		if err := s.products.Save(txCtx, p, domain.NewProductDetailsUpdatedEvent(p, time.Now().UTC())); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product: update details failed", err, map[string]any{
			"product_id": id,
		})
		return nil, err
	}

	s.evictProduct(ctx, id)

	logger.Info(ctx, "Product details updated", map[string]any{"product_id": id})
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id domain.ProductID) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.products.Delete(txCtx, id, domain.NewProductDeletedEvent(id, time.Now().UTC()))
	})
	if err != nil {
		logger.Error(ctx, "product: delete failed", err, map[string]any{
			"product_id": id,
		})
		return err
	}

	s.evictProduct(ctx, id)

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}

// evictProduct drops the cached copy after a write. Only GetByID fills the
// cache, on a miss.
func (s *ProductService) evictProduct(ctx context.Context, id domain.ProductID) {
	if err := s.productCache.Del(ctx, s.getCacheKey(id)); err != nil {
		logger.Error(ctx, "cache: evict product failed", err, map[string]any{
			"product_id": id,
		})
	}
}

func (s *ProductService) cacheProduct(ctx context.Context, product *domain.Product) {
	if err := s.productCache.Set(ctx, s.getCacheKey(product.ID()), product, s.cacheTTL); err != nil {
		logger.Error(ctx, "cache: set product failed", err, map[string]any{
			"product_id": product.ID(),
		})
	}
}
