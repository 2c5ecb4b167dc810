// Package mongodb implements the repository.Store contract on MongoDB. Each
// record collection maps to a Mongo collection; integer ids come from a
// counters collection so that records keep the small sequential identifiers
// the rest of the system expects.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/poultrypos/internal/repository"
)

const (
	collProducts  = "products"
	collBatches   = "batches"
	collFeed      = "feed"
	collSuppliers = "suppliers"
	collCustomers = "customers"
	collSales     = "sales"
	collCart      = "cart"
	collCounters  = "counters"
)

// Store is the MongoDB implementation of repository.Store.
type Store struct {
	uri    string
	dbName string
	client *mongo.Client
	db     *mongo.Database
}

// NewStore creates an unopened store. Open establishes the connection and the
// schema.
func NewStore(uri, dbName string) *Store {
	return &Store{uri: uri, dbName: dbName}
}

// Open connects, pings the server and creates any missing collections and
// indexes. Opening an already-initialized database leaves existing collections
// untouched.
func (s *Store) Open(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}

	s.client = client
	s.db = client.Database(s.dbName)

	if err := s.ensureSchema(ctx); err != nil {
		s.client = nil
		s.db = nil
		_ = client.Disconnect(ctx)
		return err
	}
	return nil
}

// Close disconnects from the server and marks the store unavailable.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

// ensureSchema creates missing collections and their secondary indexes. Index
// creation is idempotent, so re-running against an existing database is safe.
func (s *Store) ensureSchema(ctx context.Context) error {
	existing, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	all := []string{collProducts, collBatches, collFeed, collSuppliers, collCustomers, collSales, collCart, collCounters}
	for _, name := range all {
		if present[name] {
			continue
		}
		if err := s.db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	indexes := map[string][]string{
		collProducts:  {"category", "unit"},
		collBatches:   {"breed", "status", "source"},
		collFeed:      {"type", "supplier"},
		collSuppliers: {"type", "rating"},
		collSales:     {"date", "total", "paymentMethod"},
		collCustomers: {"email", "phone"},
	}
	for name, fields := range indexes {
		specs := make([]mongo.IndexModel, 0, len(fields))
		for _, field := range fields {
			specs = append(specs, mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}})
		}
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// nextID allocates the next sequential id for a collection.
func (s *Store) nextID(ctx context.Context, collection string) (int64, error) {
	res := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, fmt.Errorf("allocate id for %s: %w", collection, err)
	}
	return counter.Seq, nil
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if s.db == nil {
		return nil, repository.ErrStoreUnavailable
	}
	return s.db.Collection(name), nil
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

// insertWithID assigns a fresh id and inserts the document.
func insertWithID[T any](ctx context.Context, s *Store, collection string, record *T, setID func(*T, int64)) (int64, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return 0, err
	}
	id, err := s.nextID(ctx, collection)
	if err != nil {
		return 0, err
	}
	setID(record, id)
	if _, err := coll.InsertOne(ctx, record); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

// findAll loads every document of a collection ordered by id.
func findAll[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find all in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s documents: %w", collection, err)
	}
	return out, nil
}

// findByID loads one document or reports ErrNotFound.
func findByID[T any](ctx context.Context, s *Store, collection string, id int64) (*T, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	var out T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find %s/%d: %w", collection, id, err)
	}
	return &out, nil
}

// applyUpdate performs a shallow $set merge of the non-nil update fields plus
// a fresh updatedAt stamp.
func applyUpdate(ctx context.Context, s *Store, collection string, id int64, update any) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}

	raw, err := bson.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode %s update: %w", collection, err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode %s update: %w", collection, err)
	}
	fields["updatedAt"] = time.Now().UTC()

	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s/%d: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// deleteByID removes one document or reports ErrNotFound.
func deleteByID(ctx context.Context, s *Store, collection string, id int64) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
