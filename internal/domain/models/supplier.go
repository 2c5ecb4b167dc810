package models

import (
	"errors"
	"time"
)

// Supplier is a feed or bird supplier contact.
type Supplier struct {
	ID        int64     `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Type      string    `bson:"type" json:"type"`
	Rating    int       `bson:"rating" json:"rating"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email" json:"email"`
	Address   string    `bson:"address" json:"address"`
	Notes     string    `bson:"notes" json:"notes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the record and fills defaults before it is persisted.
func (s *Supplier) Validate() error {
	if s.Name == "" {
		return errors.New("supplier name is required")
	}
	if s.Rating == 0 {
		s.Rating = 5
	}
	if s.Rating < 1 || s.Rating > 5 {
		return errors.New("supplier rating must be between 1 and 5")
	}
	return nil
}

// SupplierUpdate carries the fields of a partial supplier update.
type SupplierUpdate struct {
	Name    *string `bson:"name,omitempty" json:"name,omitempty"`
	Type    *string `bson:"type,omitempty" json:"type,omitempty"`
	Rating  *int    `bson:"rating,omitempty" json:"rating,omitempty"`
	Phone   *string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   *string `bson:"email,omitempty" json:"email,omitempty"`
	Address *string `bson:"address,omitempty" json:"address,omitempty"`
	Notes   *string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Validate rejects partial updates that would corrupt the record.
func (u *SupplierUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return errors.New("supplier name must not be empty")
	}
	if u.Rating != nil && (*u.Rating < 1 || *u.Rating > 5) {
		return errors.New("supplier rating must be between 1 and 5")
	}
	return nil
}
