package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func mustMoney(t *testing.T, amount, code string) Money {
	t.Helper()
	money, err := ParseMoney(amount, code)
	if err != nil {
		t.Fatalf("parse money %s %s: %v", amount, code, err)
	}
	return money
}

func TestCreateProduct(t *testing.T) {
	price := mustMoney(t, "100.00", "USD")

	product, err := CreateProduct("some_name", "some_description", price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.ID().IsZero() {
		t.Error("expected a generated id")
	}
	if product.Name() != "some_name" {
		t.Errorf("expected name some_name, got %q", product.Name())
	}
	if product.Description() != "some_description" {
		t.Errorf("expected description some_description, got %q", product.Description())
	}
	if !product.Price().Equal(price) {
		t.Errorf("expected price %s, got %s", price, product.Price())
	}
	if product.Stock() != 0 {
		t.Errorf("expected stock 0, got %d", product.Stock())
	}
}

func TestCreateProduct_FreshIdentity(t *testing.T) {
	price := mustMoney(t, "1", "USD")

	a, err := CreateProduct("A", "", price)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := CreateProduct("B", "", price)
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids, both got %s", a.ID())
	}
}

func TestCreateProduct_Invalid(t *testing.T) {
	price := mustMoney(t, "100.00", "USD")

	tests := []struct {
		name    string
		input   string
		price   Money
		kind    ErrorKind
		message string
	}{
		{"empty name", "", price, KindInvalidArgument, "Product name cannot be blank"},
		{"whitespace name", " \t\n", price, KindInvalidArgument, "Product name cannot be blank"},
		{"absent price", "Widget", Money{}, KindNullArgument, "Price cannot be null"},
		{"blank name wins over absent price", "", Money{}, KindInvalidArgument, "Product name cannot be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := CreateProduct(tt.input, "desc", tt.price)
			if err == nil {
				t.Fatal("expected an error")
			}
			if product != nil {
				t.Errorf("expected no product, got %+v", product)
			}
			if !IsOfKind(err, tt.kind) {
				t.Errorf("expected kind %s, got %v", tt.kind, err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestReconstituteProduct_NoValidation(t *testing.T) {
	id := GenerateProductID()

	product := ReconstituteProduct(id, "", "", Money{}, -3)

	if product.ID() != id {
		t.Errorf("expected id %s, got %s", id, product.ID())
	}
	if product.Name() != "" {
		t.Errorf("expected empty name, got %q", product.Name())
	}
	if !product.Price().IsZero() {
		t.Errorf("expected absent price, got %s", product.Price())
	}
	if product.Stock() != -3 {
		t.Errorf("expected stock -3, got %d", product.Stock())
	}
}

func TestProduct_AdjustStock(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
		want    int
	}{
		{"receipt", 0, 10, 10},
		{"sale", 10, -4, 6},
		{"sell out", 10, -10, 0},
		{"zero delta", 7, 0, 7},
		{"zero delta on empty stock", 0, 0, 0},
		{"receipt up to the limit", math.MaxInt - 1, 1, math.MaxInt},
		{"sale from the limit", math.MaxInt, -1, math.MaxInt - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := ReconstituteProduct(GenerateProductID(), "Widget", "", mustMoney(t, "1", "USD"), tt.initial)

			if err := product.AdjustStock(tt.delta); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.Stock() != tt.want {
				t.Fatalf("expected stock %d, got %d", tt.want, product.Stock())
			}
		})
	}
}

func TestProduct_AdjustStock_Insufficient(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
	}{
		{"sale from empty stock", 0, -1},
		{"sale beyond stock", 10, -15},
		{"off by one", 5, -6},
		{"largest sale", 0, math.MinInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := ReconstituteProduct(GenerateProductID(), "Widget", "", mustMoney(t, "1", "USD"), tt.initial)

			err := product.AdjustStock(tt.delta)
			if !IsOfKind(err, KindInsufficientStock) {
				t.Fatalf("expected insufficient stock, got %v", err)
			}
			if product.Stock() != tt.initial {
				t.Errorf("stock changed on failure: %d -> %d", tt.initial, product.Stock())
			}

			var stockErr *InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Fatalf("expected *InsufficientStockError, got %T", err)
			}
			if stockErr.ProductID != product.ID() || stockErr.Stock != tt.initial || stockErr.Delta != tt.delta {
				t.Errorf("unexpected error fields %+v", stockErr)
			}
			if !strings.Contains(err.Error(), product.ID().String()) {
				t.Errorf("expected message to name the product, got %q", err.Error())
			}
		})
	}
}

func TestProduct_AdjustStock_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
	}{
		{"one past the limit", math.MaxInt, 1},
		{"large receipt", math.MaxInt - 5, 10},
		{"largest receipt on some stock", 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := ReconstituteProduct(GenerateProductID(), "Widget", "", mustMoney(t, "1", "USD"), tt.initial)

			err := product.AdjustStock(tt.delta)
			if !IsOfKind(err, KindInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
			if IsOfKind(err, KindInsufficientStock) {
				t.Fatalf("overflow reported as insufficient stock: %v", err)
			}
			if want := "Stock adjustment overflows for product: " + product.ID().String(); err.Error() != want {
				t.Errorf("expected message %q, got %q", want, err.Error())
			}
			if product.Stock() != tt.initial {
				t.Errorf("stock changed on failure: %d -> %d", tt.initial, product.Stock())
			}
		})
	}
}

func TestProduct_UpdateDetails(t *testing.T) {
	product := ReconstituteProduct(GenerateProductID(), "Widget", "desc", mustMoney(t, "100.00", "USD"), 4)
	id := product.ID()
	newPrice := mustMoney(t, "80.50", "EUR")

	if err := product.UpdateDetails("Gadget", "", newPrice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Name() != "Gadget" || product.Description() != "" {
		t.Errorf("unexpected details %q %q", product.Name(), product.Description())
	}
	if !product.Price().Equal(newPrice) {
		t.Errorf("expected price %s, got %s", newPrice, product.Price())
	}
	if product.Stock() != 4 {
		t.Errorf("expected stock 4, got %d", product.Stock())
	}
	if product.ID() != id {
		t.Errorf("id changed: %s -> %s", id, product.ID())
	}
}

func TestProduct_UpdateDetails_NoPartialMutation(t *testing.T) {
	price := mustMoney(t, "100.00", "USD")

	tests := []struct {
		name  string
		input string
		price Money
		kind  ErrorKind
	}{
		{"blank name", "   ", mustMoney(t, "1.00", "EUR"), KindInvalidArgument},
		{"empty name", "", mustMoney(t, "1.00", "EUR"), KindInvalidArgument},
		{"absent price", "Gadget", Money{}, KindNullArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := ReconstituteProduct(GenerateProductID(), "Widget", "desc", price, 3)

			err := product.UpdateDetails(tt.input, "new desc", tt.price)
			if !IsOfKind(err, tt.kind) {
				t.Fatalf("expected kind %s, got %v", tt.kind, err)
			}
			if product.Name() != "Widget" || product.Description() != "desc" {
				t.Errorf("details changed on failure: %q %q", product.Name(), product.Description())
			}
			if !product.Price().Equal(price) {
				t.Errorf("price changed on failure: %s", product.Price())
			}
			if product.Stock() != 3 {
				t.Errorf("stock changed on failure: %d", product.Stock())
			}
		})
	}
}

func TestProduct_StockScenario(t *testing.T) {
	product, err := CreateProduct("Widget", "desc", mustMoney(t, "100.00", "USD"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := product.AdjustStock(10); err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if product.Stock() != 10 {
		t.Fatalf("expected stock 10, got %d", product.Stock())
	}

	if err := product.AdjustStock(-15); !IsOfKind(err, KindInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if product.Stock() != 10 {
		t.Fatalf("expected stock 10 after failed sale, got %d", product.Stock())
	}

	if err := product.AdjustStock(-10); err != nil {
		t.Fatalf("sell out: %v", err)
	}
	if product.Stock() != 0 {
		t.Fatalf("expected stock 0, got %d", product.Stock())
	}
}

func TestProduct_JSONSnapshot(t *testing.T) {
	original := ReconstituteProduct(GenerateProductID(), "Widget", "desc", mustMoney(t, "100.00", "USD"), 12)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Product
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.ID() != original.ID() || restored.Name() != original.Name() || restored.Description() != original.Description() {
		t.Errorf("identity or details lost: %+v", restored)
	}
	if got := restored.Price().String(); got != "100.00 USD" {
		t.Errorf("expected price 100.00 USD, got %s", got)
	}
	if restored.Stock() != original.Stock() {
		t.Errorf("expected stock %d, got %d", original.Stock(), restored.Stock())
	}
}
