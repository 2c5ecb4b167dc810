package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

type productRepo struct{ s *Store }

func (r *productRepo) Add(ctx context.Context, product *models.Product) (int64, error) {
	return insertWithID(ctx, r.s, collProducts, product, func(p *models.Product, id int64) { p.ID = id })
}

func (r *productRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.s, collProducts)
}

func (r *productRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	return findByID[models.Product](ctx, r.s, collProducts, id)
}

func (r *productRepo) Update(ctx context.Context, id int64, update models.ProductUpdate) error {
	return applyUpdate(ctx, r.s, collProducts, id, update)
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.s, collProducts, id)
}

// AdjustStock applies the delta in one guarded write so a concurrent reader
// never observes a negative stock value.
func (r *productRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	coll, err := r.s.collection(collProducts)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	res, err := coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("adjust stock for product %d: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Distinguish a missing product from a guard rejection.
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return repository.ErrInsufficientStock
}

type batchRepo struct{ s *Store }

func (r *batchRepo) Add(ctx context.Context, batch *models.Batch) (int64, error) {
	return insertWithID(ctx, r.s, collBatches, batch, func(b *models.Batch, id int64) { b.ID = id })
}

func (r *batchRepo) GetAll(ctx context.Context) ([]models.Batch, error) {
	return findAll[models.Batch](ctx, r.s, collBatches)
}

func (r *batchRepo) Get(ctx context.Context, id int64) (*models.Batch, error) {
	return findByID[models.Batch](ctx, r.s, collBatches, id)
}

func (r *batchRepo) Update(ctx context.Context, id int64, update models.BatchUpdate) error {
	return applyUpdate(ctx, r.s, collBatches, id, update)
}

func (r *batchRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.s, collBatches, id)
}

type feedRepo struct{ s *Store }

func (r *feedRepo) Add(ctx context.Context, item *models.FeedItem) (int64, error) {
	return insertWithID(ctx, r.s, collFeed, item, func(f *models.FeedItem, id int64) { f.ID = id })
}

func (r *feedRepo) GetAll(ctx context.Context) ([]models.FeedItem, error) {
	return findAll[models.FeedItem](ctx, r.s, collFeed)
}

func (r *feedRepo) Get(ctx context.Context, id int64) (*models.FeedItem, error) {
	return findByID[models.FeedItem](ctx, r.s, collFeed, id)
}

func (r *feedRepo) Update(ctx context.Context, id int64, update models.FeedItemUpdate) error {
	return applyUpdate(ctx, r.s, collFeed, id, update)
}

func (r *feedRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.s, collFeed, id)
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Add(ctx context.Context, supplier *models.Supplier) (int64, error) {
	return insertWithID(ctx, r.s, collSuppliers, supplier, func(sp *models.Supplier, id int64) { sp.ID = id })
}

func (r *supplierRepo) GetAll(ctx context.Context) ([]models.Supplier, error) {
	return findAll[models.Supplier](ctx, r.s, collSuppliers)
}

func (r *supplierRepo) Get(ctx context.Context, id int64) (*models.Supplier, error) {
	return findByID[models.Supplier](ctx, r.s, collSuppliers, id)
}

func (r *supplierRepo) Update(ctx context.Context, id int64, update models.SupplierUpdate) error {
	return applyUpdate(ctx, r.s, collSuppliers, id, update)
}

func (r *supplierRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.s, collSuppliers, id)
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Add(ctx context.Context, customer *models.Customer) (int64, error) {
	return insertWithID(ctx, r.s, collCustomers, customer, func(c *models.Customer, id int64) { c.ID = id })
}

func (r *customerRepo) GetAll(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, r.s, collCustomers)
}

func (r *customerRepo) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return findByID[models.Customer](ctx, r.s, collCustomers, id)
}

func (r *customerRepo) Update(ctx context.Context, id int64, update models.CustomerUpdate) error {
	return applyUpdate(ctx, r.s, collCustomers, id, update)
}

func (r *customerRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.s, collCustomers, id)
}

func (r *customerRepo) AddSpent(ctx context.Context, id int64, amount float64) error {
	coll, err := r.s.collection(collCustomers)
	if err != nil {
		return err
	}
	res, err := coll.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"totalSpent": amount},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("add spent for customer %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Add(ctx context.Context, sale *models.Sale) (int64, error) {
	return insertWithID(ctx, r.s, collSales, sale, func(sl *models.Sale, id int64) { sl.ID = id })
}

func (r *saleRepo) GetAll(ctx context.Context) ([]models.Sale, error) {
	return findAll[models.Sale](ctx, r.s, collSales)
}

func (r *saleRepo) Get(ctx context.Context, id int64) (*models.Sale, error) {
	return findByID[models.Sale](ctx, r.s, collSales, id)
}

type cartRepo struct{ s *Store }

func (r *cartRepo) Put(ctx context.Context, item models.CartItem) error {
	coll, err := r.s.collection(collCart)
	if err != nil {
		return err
	}
	_, err = coll.ReplaceOne(ctx, bson.M{"_id": item.ProductID}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put cart line %d: %w", item.ProductID, err)
	}
	return nil
}

func (r *cartRepo) GetAll(ctx context.Context) ([]models.CartItem, error) {
	return findAll[models.CartItem](ctx, r.s, collCart)
}

func (r *cartRepo) Remove(ctx context.Context, productID int64) error {
	coll, err := r.s.collection(collCart)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
		return fmt.Errorf("remove cart line %d: %w", productID, err)
	}
	return nil
}

func (r *cartRepo) Clear(ctx context.Context) error {
	coll, err := r.s.collection(collCart)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
