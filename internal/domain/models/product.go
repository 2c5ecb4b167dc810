package models

import (
	"errors"
	"fmt"
	"time"
)

// Category classifies catalog products.
type Category string

const (
	CategoryProcessed Category = "processed"
	CategoryLive      Category = "live"
	CategoryEggs      Category = "eggs"
	CategoryFeed      Category = "feed"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryProcessed, CategoryLive, CategoryEggs, CategoryFeed:
		return true
	}
	return false
}

// Product is a sellable catalog item. Stock is decremented by completed sales
// and must never go negative.
type Product struct {
	ID          int64     `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Category    Category  `bson:"category" json:"category"`
	Unit        string    `bson:"unit" json:"unit"`
	Price       float64   `bson:"price" json:"price"`
	Stock       int       `bson:"stock" json:"stock"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the record before it is persisted.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("unknown product category %q", p.Category)
	}
	if p.Unit == "" {
		return errors.New("product unit is required")
	}
	if p.Price < 0 {
		return errors.New("product price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	return nil
}

// ProductUpdate carries the fields of a partial product update. Nil fields are
// left untouched by the store.
type ProductUpdate struct {
	Name        *string   `bson:"name,omitempty" json:"name,omitempty"`
	Category    *Category `bson:"category,omitempty" json:"category,omitempty"`
	Unit        *string   `bson:"unit,omitempty" json:"unit,omitempty"`
	Price       *float64  `bson:"price,omitempty" json:"price,omitempty"`
	Stock       *int      `bson:"stock,omitempty" json:"stock,omitempty"`
	Description *string   `bson:"description,omitempty" json:"description,omitempty"`
}

// Validate rejects partial updates that would corrupt the record.
func (u *ProductUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return errors.New("product name must not be empty")
	}
	if u.Category != nil && !u.Category.Valid() {
		return fmt.Errorf("unknown product category %q", *u.Category)
	}
	if u.Price != nil && *u.Price < 0 {
		return errors.New("product price must not be negative")
	}
	if u.Stock != nil && *u.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	return nil
}
