package models

import (
	"errors"
	"time"
)

// BatchStatusActive is the default lifecycle status for a new batch. Statuses
// are free-form strings ("Active", "Sold", ...) rather than a closed enum.
const BatchStatusActive = "Active"

// Batch is a cohort of live birds that arrived together and shares breed,
// source and status attributes.
type Batch struct {
	ID          int64     `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Breed       string    `bson:"breed" json:"breed"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	AgeDays     int       `bson:"age" json:"age"`
	WeightKg    float64   `bson:"weight" json:"weight"`
	Source      string    `bson:"source" json:"source"`
	Status      string    `bson:"status" json:"status"`
	Notes       string    `bson:"notes" json:"notes"`
	ArrivalDate time.Time `bson:"arrivalDate" json:"arrivalDate"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the record and fills defaults before it is persisted.
func (b *Batch) Validate() error {
	if b.Name == "" {
		return errors.New("batch name is required")
	}
	if b.Quantity < 0 {
		return errors.New("batch quantity must not be negative")
	}
	if b.Status == "" {
		b.Status = BatchStatusActive
	}
	return nil
}

// BatchUpdate carries the fields of a partial batch update.
type BatchUpdate struct {
	Name     *string  `bson:"name,omitempty" json:"name,omitempty"`
	Breed    *string  `bson:"breed,omitempty" json:"breed,omitempty"`
	Quantity *int     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	AgeDays  *int     `bson:"age,omitempty" json:"age,omitempty"`
	WeightKg *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Source   *string  `bson:"source,omitempty" json:"source,omitempty"`
	Status   *string  `bson:"status,omitempty" json:"status,omitempty"`
	Notes    *string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Validate rejects partial updates that would corrupt the record.
func (u *BatchUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return errors.New("batch name must not be empty")
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return errors.New("batch quantity must not be negative")
	}
	return nil
}
