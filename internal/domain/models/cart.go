package models

import "errors"

// CartItem is one line of the transient pre-sale cart, keyed by product id.
// Price, name and unit are snapshots taken when the line was added so that a
// later catalog edit does not silently reprice an open cart.
type CartItem struct {
	ProductID int64   `bson:"_id" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Name      string  `bson:"name" json:"name"`
	Unit      string  `bson:"unit" json:"unit"`
}

// Validate checks the line before it is persisted.
func (c *CartItem) Validate() error {
	if c.ProductID <= 0 {
		return errors.New("cart item product id is required")
	}
	if c.Quantity <= 0 {
		return errors.New("cart item quantity must be positive")
	}
	return nil
}

// LineTotal is the extended price of the line.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}
