package models

import (
	"errors"
	"time"
)

// Customer is a shop customer. TotalSpent accumulates the totals of completed
// sales attributed to the customer at checkout.
type Customer struct {
	ID         int64     `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Phone      string    `bson:"phone" json:"phone"`
	Email      string    `bson:"email" json:"email"`
	Address    string    `bson:"address" json:"address"`
	TotalSpent float64   `bson:"totalSpent" json:"totalSpent"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the record before it is persisted.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return errors.New("customer name is required")
	}
	if c.TotalSpent < 0 {
		return errors.New("customer totalSpent must not be negative")
	}
	return nil
}

// CustomerUpdate carries the fields of a partial customer update. TotalSpent
// is deliberately absent; it only moves through checkout.
type CustomerUpdate struct {
	Name    *string `bson:"name,omitempty" json:"name,omitempty"`
	Phone   *string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   *string `bson:"email,omitempty" json:"email,omitempty"`
	Address *string `bson:"address,omitempty" json:"address,omitempty"`
}

// Validate rejects partial updates that would corrupt the record.
func (u *CustomerUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return errors.New("customer name must not be empty")
	}
	return nil
}
