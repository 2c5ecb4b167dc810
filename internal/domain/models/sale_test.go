package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentMobile.Valid())

	assert.False(t, PaymentMethod("").Valid())
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("CASH").Valid())
}

func TestSaleValidate(t *testing.T) {
	sale := Sale{
		Date:          time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		Items:         []SaleItem{{ProductID: 1, Name: "Whole Chicken", Quantity: 1, Price: 12.99}},
		Total:         14.29,
		PaymentMethod: PaymentCash,
	}
	assert.NoError(t, sale.Validate())

	bad := sale
	bad.PaymentMethod = "bitcoin"
	assert.Error(t, bad.Validate())

	empty := sale
	empty.Items = nil
	assert.Error(t, empty.Validate())
}
