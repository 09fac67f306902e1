// Package catalog holds the fixed demo product catalog.
package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrProductNotFound is returned when a SKU is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Product is an item whose reference price the engine personalizes.
type Product struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"basePrice"` // reference price in yuan
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

// Product categories used by the history-novelty rule and the generator.
const (
	CategoryDigital = "数码"
	CategoryApparel = "服饰"
	CategoryFood    = "食品"
	CategoryHome    = "家居"
	CategoryBeauty  = "美妆"
)

// Categories lists every known category tag.
func Categories() []string {
	return []string{CategoryDigital, CategoryApparel, CategoryFood, CategoryHome, CategoryBeauty}
}

// Store provides read access to the product catalog.
type Store interface {
	Get(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
}

// MemoryStore is the built-in catalog used by the demo. The product set is
// fixed; there is no write path.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*Product
	order    []string
}

// NewMemoryStore creates a catalog preloaded with the demo products.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{products: make(map[string]*Product)}
	for _, p := range defaultProducts() {
		s.products[p.SKU] = p
		s.order = append(s.order, p.SKU)
	}
	return s
}

func defaultProducts() []*Product {
	return []*Product{
		{SKU: "sneakers-199", Name: "运动鞋", BasePrice: 199, Category: CategoryApparel, Description: "参考价 ¥199"},
		{SKU: "earbuds-599", Name: "无线耳机", BasePrice: 599, Category: CategoryDigital, Description: "参考价 ¥599"},
		{SKU: "watch-1299", Name: "智能手表", BasePrice: 1299, Category: CategoryDigital, Description: "参考价 ¥1299"},
		{SKU: "laptop-4999", Name: "轻薄笔记本", BasePrice: 4999, Category: CategoryDigital, Description: "参考价 ¥4999"},
	}
}

func (s *MemoryStore) Get(ctx context.Context, sku string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[sku]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Product, 0, len(s.order))
	for _, sku := range s.order {
		cp := *s.products[sku]
		result = append(result, &cp)
	}
	return result, nil
}
