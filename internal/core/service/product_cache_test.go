package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/dto"
	"github.com/newmandigital/catalog/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

// memoryProducts is a ProductPort over a map. It stores copies so callers
// never share an instance with the store.
type memoryProducts struct {
	mu       sync.Mutex
	products map[domain.ProductID]*domain.Product
}

func newMemoryProducts(products ...*domain.Product) *memoryProducts {
	m := &memoryProducts{products: make(map[domain.ProductID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID()] = clone(p)
	}
	return m
}

func clone(p *domain.Product) *domain.Product {
	return domain.ReconstituteProduct(p.ID(), p.Name(), p.Description(), p.Price(), p.Stock())
}

func (m *memoryProducts) Create(_ context.Context, p *domain.Product, _ domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID()]; ok {
		return domain.NewDuplicateSkuError(p.ID().String())
	}
	m.products[p.ID()] = clone(p)
	return nil
}

func (m *memoryProducts) GetByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.NewProductNotFoundError(id)
	}
	return clone(p), nil
}

func (m *memoryProducts) GetAll(context.Context, int64, int64) ([]*domain.Product, error) {
	return nil, nil
}

func (m *memoryProducts) Save(_ context.Context, p *domain.Product, _ domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID()]; !ok {
		return domain.NewProductNotFoundError(p.ID())
	}
	m.products[p.ID()] = clone(p)
	return nil
}

func (m *memoryProducts) Delete(_ context.Context, id domain.ProductID, _ domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.NewProductNotFoundError(id)
	}
	delete(m.products, id)
	return nil
}

// memoryCache is a CachePort whose onDel hook runs before the first Del,
// letting a test slot another request between a write and its cache update.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Product
	onDel   func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*domain.Product)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.entries[key]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value *domain.Product, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = clone(value)
	return nil
}

func (c *memoryCache) SetNX(ctx context.Context, key string, value *domain.Product, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	_, exists := c.entries[key]
	c.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, c.Set(ctx, key, value, ttl)
}

func (c *memoryCache) Del(_ context.Context, key string) error {
	if hook := c.onDel; hook != nil {
		c.onDel = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func setupCachedProductService(t *testing.T, products *memoryProducts, cache *memoryCache) *ProductService {
	ctrl := gomock.NewController(t)
	tx := mock.NewMockTransactionManager(ctrl)
	tx.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()
	idem := NewIdempotencyService[domain.Product](mock.NewMockCachePort[IdempotencyEntry[domain.Product]](ctrl), time.Hour, 10*time.Millisecond, 100*time.Millisecond)
	return NewProductService(products, cache, idem, tx, 15*time.Minute)
}

func TestProductService_DeleteBetweenAdjustAndCacheUpdate(t *testing.T) {
	p := storedProduct(t, 10)
	products := newMemoryProducts(p)
	cache := newMemoryCache()
	svc := setupCachedProductService(t, products, cache)
	ctx := context.Background()

	// warm the cache
	if _, err := svc.GetByID(ctx, p.ID()); err != nil {
		t.Fatalf("get: %v", err)
	}

	cache.onDel = func() {
		if err := svc.Delete(ctx, p.ID()); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	if _, err := svc.AdjustStock(ctx, p.ID(), -4); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	got, err := svc.GetByID(ctx, p.ID())
	if !domain.IsOfKind(err, domain.KindProductNotFound) {
		t.Fatalf("expected KindProductNotFound after delete, got product=%v err=%v", got != nil, err)
	}
}

func TestProductService_ConcurrentAdjustmentsLeaveLatestStock(t *testing.T) {
	p := storedProduct(t, 10)
	products := newMemoryProducts(p)
	cache := newMemoryCache()
	svc := setupCachedProductService(t, products, cache)
	ctx := context.Background()

	// the second adjustment commits and reaches the cache before the first
	cache.onDel = func() {
		if _, err := svc.AdjustStock(ctx, p.ID(), -5); err != nil {
			t.Fatalf("second adjust: %v", err)
		}
		if _, err := svc.GetByID(ctx, p.ID()); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if _, err := svc.AdjustStock(ctx, p.ID(), +3); err != nil {
		t.Fatalf("first adjust: %v", err)
	}

	got, err := svc.GetByID(ctx, p.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stock() != 8 {
		t.Fatalf("expected stock 8, got %d", got.Stock())
	}
}

func TestProductService_UpdateDetailsEvictsCachedCopy(t *testing.T) {
	p := storedProduct(t, 2)
	products := newMemoryProducts(p)
	cache := newMemoryCache()
	svc := setupCachedProductService(t, products, cache)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, p.ID()); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.UpdateDetails(ctx, p.ID(), &dto.UpdateProductRequest{
		Name:  "Gadget",
		Price: dto.MoneyRequest{Amount: "7.00", Currency: "EUR"},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(ctx, p.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "Gadget" || got.Price().String() != "7.00 EUR" {
		t.Fatalf("stale product served: %s %s", got.Name(), got.Price())
	}
}
