package models

import (
	"errors"
	"math"
	"time"
)

// FeedStatus is the derived freshness/stock classification of a feed record.
// It is computed at read time and never persisted.
type FeedStatus string

const (
	FeedStatusExpired      FeedStatus = "expired"
	FeedStatusExpiringSoon FeedStatus = "expiring-soon"
	FeedStatusLowStock     FeedStatus = "low-stock"
	FeedStatusInStock      FeedStatus = "in-stock"
)

const (
	// feedLowStockKg is the quantity threshold below which a feed item counts
	// as low on stock.
	feedLowStockKg = 50
	// feedExpiryWindowDays is the look-ahead window for the expiring-soon
	// classification.
	feedExpiryWindowDays = 7
)

// FeedItem is a consumable feed supply lot. ExpiryDate is optional; a zero
// value means the lot carries no expiry.
type FeedItem struct {
	ID         int64     `bson:"_id" json:"id"`
	Type       string    `bson:"type" json:"type"`
	QuantityKg float64   `bson:"quantity" json:"quantity"`
	Price      float64   `bson:"price" json:"price"`
	Supplier   string    `bson:"supplier" json:"supplier"`
	ExpiryDate time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Lot        string    `bson:"lot" json:"lot"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the record before it is persisted.
func (f *FeedItem) Validate() error {
	if f.Type == "" {
		return errors.New("feed type is required")
	}
	if f.QuantityKg < 0 {
		return errors.New("feed quantity must not be negative")
	}
	if f.Price < 0 {
		return errors.New("feed price must not be negative")
	}
	return nil
}

// StatusAt classifies the item relative to now. Expiry takes precedence over
// the quantity check: an expired lot is reported expired no matter how much of
// it remains.
func (f FeedItem) StatusAt(now time.Time) FeedStatus {
	if !f.ExpiryDate.IsZero() {
		if f.ExpiryDate.Before(now) {
			return FeedStatusExpired
		}
		daysUntil := math.Ceil(f.ExpiryDate.Sub(now).Hours() / 24)
		if daysUntil <= feedExpiryWindowDays {
			return FeedStatusExpiringSoon
		}
	}
	if f.QuantityKg < feedLowStockKg {
		return FeedStatusLowStock
	}
	return FeedStatusInStock
}

// NeedsAttention reports whether the item should appear in stock digests.
func (f FeedItem) NeedsAttention(now time.Time) bool {
	return f.StatusAt(now) != FeedStatusInStock
}

// FeedItemUpdate carries the fields of a partial feed update.
type FeedItemUpdate struct {
	Type       *string    `bson:"type,omitempty" json:"type,omitempty"`
	QuantityKg *float64   `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Price      *float64   `bson:"price,omitempty" json:"price,omitempty"`
	Supplier   *string    `bson:"supplier,omitempty" json:"supplier,omitempty"`
	ExpiryDate *time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Lot        *string    `bson:"lot,omitempty" json:"lot,omitempty"`
}

// Validate rejects partial updates that would corrupt the record.
func (u *FeedItemUpdate) Validate() error {
	if u.Type != nil && *u.Type == "" {
		return errors.New("feed type must not be empty")
	}
	if u.QuantityKg != nil && *u.QuantityKg < 0 {
		return errors.New("feed quantity must not be negative")
	}
	if u.Price != nil && *u.Price < 0 {
		return errors.New("feed price must not be negative")
	}
	return nil
}
