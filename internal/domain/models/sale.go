package models

import (
	"errors"
	"fmt"
	"time"
)

// PaymentMethod identifies how a sale was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// SaleItem is a snapshot of one cart line at checkout time.
type SaleItem struct {
	ProductID int64   `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Unit      string  `bson:"unit" json:"unit"`
}

// Sale is an immutable record of a completed transaction. Sales are append
// only; the application never updates or deletes them.
type Sale struct {
	ID             int64         `bson:"_id" json:"id"`
	Date           time.Time     `bson:"date" json:"date"`
	Items          []SaleItem    `bson:"items" json:"items"`
	Subtotal       float64       `bson:"subtotal" json:"subtotal"`
	Tax            float64       `bson:"tax" json:"tax"`
	Total          float64       `bson:"total" json:"total"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	AmountReceived float64       `bson:"amountReceived" json:"amountReceived"`
	ChangeGiven    float64       `bson:"changeGiven" json:"changeGiven"`
	Customer       string        `bson:"customer,omitempty" json:"customer,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

// Validate checks the record before it is persisted.
func (s *Sale) Validate() error {
	if len(s.Items) == 0 {
		return errors.New("sale must contain at least one item")
	}
	if s.Date.IsZero() {
		return errors.New("sale date is required")
	}
	if !s.PaymentMethod.Valid() {
		return fmt.Errorf("unknown payment method %q", s.PaymentMethod)
	}
	if s.Total < 0 {
		return errors.New("sale total must not be negative")
	}
	return nil
}
