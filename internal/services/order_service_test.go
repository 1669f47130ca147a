package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/pricing"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]string{
		{model.StatusPending, model.StatusShipped},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusShipped, model.StatusCompleted},
		{model.StatusShipped, model.StatusReturned},
		{model.StatusCompleted, model.StatusReturned},
	}
	for _, tr := range legal {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s should be legal", tr[0], tr[1])
	}

	illegal := [][2]string{
		{model.StatusPending, model.StatusCompleted},
		{model.StatusPending, model.StatusReturned},
		{model.StatusShipped, model.StatusPending},
		{model.StatusShipped, model.StatusCancelled},
		{model.StatusCancelled, model.StatusShipped},
		{model.StatusReturned, model.StatusPending},
		{model.StatusCompleted, model.StatusShipped},
	}
	for _, tr := range illegal {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s should be rejected", tr[0], tr[1])
	}
}

func TestCheckoutInputValidate(t *testing.T) {
	in := CheckoutInput{
		CustomerName:  "Jamie Perera",
		Email:         "jamie@example.com",
		Address:       "12 Galle Rd",
		PaymentMethod: model.PaymentCOD,
	}
	require.NoError(t, in.validate())
	assert.Equal(t, "web", in.Source)

	bad := in
	bad.CustomerName = "  "
	assert.Error(t, bad.validate())

	bad = in
	bad.Email = ""
	assert.Error(t, bad.validate())

	bad = in
	bad.Address = ""
	assert.Error(t, bad.validate())

	bad = in
	bad.PaymentMethod = "crypto"
	assert.Error(t, bad.validate())
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	svc := NewOrderService(nil, nil, pricing.DefaultConfig(), nil)
	sess := &cart.Session{ID: "s", Store: cart.NewStore(cart.NewMemoryBackend(), nil)}

	in := CheckoutInput{
		CustomerName:  "Jamie Perera",
		Email:         "jamie@example.com",
		Address:       "12 Galle Rd",
		PaymentMethod: model.PaymentCOD,
	}
	_, err := svc.Submit(context.Background(), sess, in)
	require.EqualError(t, err, "cart is empty")
}

func TestExportRow(t *testing.T) {
	promo := "SAVE10"
	o := &model.Order{
		OrderID:       42,
		Reference:     "ORD-abc",
		CustomerName:  "Jamie Perera",
		Email:         "jamie@example.com",
		Phone:         "0771234567",
		Address:       "12 Galle Rd",
		City:          "Colombo",
		PostalCode:    "00300",
		PaymentMethod: model.PaymentCard,
		PromoCode:     &promo,
		Subtotal:      6000,
		Discount:      600,
		Shipping:      0,
		Tax:           540,
		Fee:           100,
		Total:         6040,
		Status:        model.StatusPending,
		Source:        "web",
		OrderDate:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{Name: "Basic Tee", Size: "M", Color: "Black", Quantity: 2, UnitPrice: 1500},
			{Name: "Hoodie", Size: "L", Color: "Grey", Quantity: 1, UnitPrice: 3000},
		},
	}

	row := exportRow(o)
	require.Len(t, row, len(exportHeader))
	assert.Equal(t, "42", row[0])
	assert.Equal(t, "12 Galle Rd, Colombo 00300", row[5])
	assert.Equal(t, "2x Basic Tee (M/Black); 1x Hoodie (L/Grey)", row[6])
	assert.Equal(t, "6000", row[7])
	assert.Equal(t, "SAVE10", row[16])
	assert.Equal(t, "2025-03-14 09:30", row[14])
}

func TestFormatItemsEmpty(t *testing.T) {
	assert.Equal(t, "", formatItems(nil))
}
