// Package memory provides a map-backed Store with the same semantics as the
// MongoDB backend. It backs tests and installations that run without a
// database; state lives for the process lifetime only.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

func now() time.Time { return time.Now().UTC() }

// Store is the in-memory implementation of repository.Store. A single mutex
// serializes all operations, which matches the single-user execution model.
type Store struct {
	mu   sync.RWMutex
	open bool

	products  map[int64]models.Product
	batches   map[int64]models.Batch
	feed      map[int64]models.FeedItem
	suppliers map[int64]models.Supplier
	customers map[int64]models.Customer
	sales     map[int64]models.Sale
	cart      map[int64]models.CartItem

	counters map[string]int64
}

// NewStore creates an unopened in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Open initializes the collections. Calling Open on an already-open store is a
// no-op, mirroring the additive schema creation of the persistent backend.
func (s *Store) Open(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return nil
	}
	s.products = map[int64]models.Product{}
	s.batches = map[int64]models.Batch{}
	s.feed = map[int64]models.FeedItem{}
	s.suppliers = map[int64]models.Supplier{}
	s.customers = map[int64]models.Customer{}
	s.sales = map[int64]models.Sale{}
	s.cart = map[int64]models.CartItem{}
	s.counters = map[string]int64{}
	s.open = true
	return nil
}

// Close marks the store unavailable.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *Store) nextID(collection string) int64 {
	s.counters[collection]++
	return s.counters[collection]
}

// Products returns the product collection.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Batches returns the batch collection.
func (s *Store) Batches() repository.BatchRepository { return &batchRepo{s} }

// Feed returns the feed collection.
func (s *Store) Feed() repository.FeedRepository { return &feedRepo{s} }

// Suppliers returns the supplier collection.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s} }

// Customers returns the customer collection.
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }

// Sales returns the sales collection.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s} }

// Cart returns the cart collection.
func (s *Store) Cart() repository.CartRepository { return &cartRepo{s} }

// sortedValues flattens a map collection into a slice ordered by id, matching
// the key-ordered traversal of the persistent backend.
func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
