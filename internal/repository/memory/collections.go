package memory

import (
	"context"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

type productRepo struct{ s *Store }

func (r *productRepo) Add(_ context.Context, product *models.Product) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	product.ID = r.s.nextID("products")
	r.s.products[product.ID] = *product
	return product.ID, nil
}

func (r *productRepo) GetAll(_ context.Context) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.products), nil
}

func (r *productRepo) Get(_ context.Context, id int64) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) Update(_ context.Context, id int64, update models.ProductUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Unit != nil {
		p.Unit = *update.Unit
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	p.UpdatedAt = now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = now()
	r.s.products[id] = p
	return nil
}

type batchRepo struct{ s *Store }

func (r *batchRepo) Add(_ context.Context, batch *models.Batch) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	batch.ID = r.s.nextID("batches")
	r.s.batches[batch.ID] = *batch
	return batch.ID, nil
}

func (r *batchRepo) GetAll(_ context.Context) ([]models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.batches), nil
}

func (r *batchRepo) Get(_ context.Context, id int64) (*models.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	b, ok := r.s.batches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *batchRepo) Update(_ context.Context, id int64, update models.BatchUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	b, ok := r.s.batches[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		b.Name = *update.Name
	}
	if update.Breed != nil {
		b.Breed = *update.Breed
	}
	if update.Quantity != nil {
		b.Quantity = *update.Quantity
	}
	if update.AgeDays != nil {
		b.AgeDays = *update.AgeDays
	}
	if update.WeightKg != nil {
		b.WeightKg = *update.WeightKg
	}
	if update.Source != nil {
		b.Source = *update.Source
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	if update.Notes != nil {
		b.Notes = *update.Notes
	}
	b.UpdatedAt = now()
	r.s.batches[id] = b
	return nil
}

func (r *batchRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	if _, ok := r.s.batches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.batches, id)
	return nil
}

type feedRepo struct{ s *Store }

func (r *feedRepo) Add(_ context.Context, item *models.FeedItem) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	item.ID = r.s.nextID("feed")
	r.s.feed[item.ID] = *item
	return item.ID, nil
}

func (r *feedRepo) GetAll(_ context.Context) ([]models.FeedItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.feed), nil
}

func (r *feedRepo) Get(_ context.Context, id int64) (*models.FeedItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	f, ok := r.s.feed[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *feedRepo) Update(_ context.Context, id int64, update models.FeedItemUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	f, ok := r.s.feed[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Type != nil {
		f.Type = *update.Type
	}
	if update.QuantityKg != nil {
		f.QuantityKg = *update.QuantityKg
	}
	if update.Price != nil {
		f.Price = *update.Price
	}
	if update.Supplier != nil {
		f.Supplier = *update.Supplier
	}
	if update.ExpiryDate != nil {
		f.ExpiryDate = *update.ExpiryDate
	}
	if update.Lot != nil {
		f.Lot = *update.Lot
	}
	f.UpdatedAt = now()
	r.s.feed[id] = f
	return nil
}

func (r *feedRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	if _, ok := r.s.feed[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.feed, id)
	return nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Add(_ context.Context, supplier *models.Supplier) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	supplier.ID = r.s.nextID("suppliers")
	r.s.suppliers[supplier.ID] = *supplier
	return supplier.ID, nil
}

func (r *supplierRepo) GetAll(_ context.Context) ([]models.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.suppliers), nil
}

func (r *supplierRepo) Get(_ context.Context, id int64) (*models.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *supplierRepo) Update(_ context.Context, id int64, update models.SupplierUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	sp, ok := r.s.suppliers[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		sp.Name = *update.Name
	}
	if update.Type != nil {
		sp.Type = *update.Type
	}
	if update.Rating != nil {
		sp.Rating = *update.Rating
	}
	if update.Phone != nil {
		sp.Phone = *update.Phone
	}
	if update.Email != nil {
		sp.Email = *update.Email
	}
	if update.Address != nil {
		sp.Address = *update.Address
	}
	if update.Notes != nil {
		sp.Notes = *update.Notes
	}
	sp.UpdatedAt = now()
	r.s.suppliers[id] = sp
	return nil
}

func (r *supplierRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	if _, ok := r.s.suppliers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Add(_ context.Context, customer *models.Customer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	customer.ID = r.s.nextID("customers")
	r.s.customers[customer.ID] = *customer
	return customer.ID, nil
}

func (r *customerRepo) GetAll(_ context.Context) ([]models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.customers), nil
}

func (r *customerRepo) Get(_ context.Context, id int64) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) Update(_ context.Context, id int64, update models.CustomerUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	c, ok := r.s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Address != nil {
		c.Address = *update.Address
	}
	c.UpdatedAt = now()
	r.s.customers[id] = c
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	if _, ok := r.s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r *customerRepo) AddSpent(_ context.Context, id int64, amount float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	c, ok := r.s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.TotalSpent += amount
	c.UpdatedAt = now()
	r.s.customers[id] = c
	return nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Add(_ context.Context, sale *models.Sale) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return 0, repository.ErrStoreUnavailable
	}
	sale.ID = r.s.nextID("sales")
	stored := *sale
	stored.Items = append([]models.SaleItem(nil), sale.Items...)
	r.s.sales[sale.ID] = stored
	return sale.ID, nil
}

func (r *saleRepo) GetAll(_ context.Context) ([]models.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.sales), nil
}

func (r *saleRepo) Get(_ context.Context, id int64) (*models.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	sl, ok := r.s.sales[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sl, nil
}

type cartRepo struct{ s *Store }

func (r *cartRepo) Put(_ context.Context, item models.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	r.s.cart[item.ProductID] = item
	return nil
}

func (r *cartRepo) GetAll(_ context.Context) ([]models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.open {
		return nil, repository.ErrStoreUnavailable
	}
	return sortedValues(r.s.cart), nil
}

func (r *cartRepo) Remove(_ context.Context, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	delete(r.s.cart, productID)
	return nil
}

func (r *cartRepo) Clear(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.open {
		return repository.ErrStoreUnavailable
	}
	r.s.cart = map[int64]models.CartItem{}
	return nil
}
