package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

func line(productID int64, price int64, qty int) model.LineItem {
	return model.LineItem{ProductID: productID, Name: "tee", UnitPrice: price, Quantity: qty, Size: "M", Color: "Black"}
}

func TestQuoteBelowFreeShippingThreshold(t *testing.T) {
	b := Quote([]model.LineItem{line(1, 2000, 2)}, nil, model.PaymentCOD, DefaultConfig())

	assert.Equal(t, int64(4000), b.Subtotal)
	assert.Equal(t, int64(0), b.Discount)
	assert.Equal(t, int64(200), b.Shipping)
	assert.Equal(t, int64(400), b.Tax)
	assert.Equal(t, int64(0), b.Fee)
	assert.Equal(t, int64(4600), b.Total)
}

func TestQuotePercentPromoFreeShipping(t *testing.T) {
	promo := &model.AppliedPromo{Code: "SAVE10", DiscountType: model.DiscountPercent, DiscountValue: 10}
	b := Quote([]model.LineItem{line(1, 3000, 2)}, promo, model.PaymentCOD, DefaultConfig())

	assert.Equal(t, int64(6000), b.Subtotal)
	assert.Equal(t, int64(600), b.Discount)
	assert.Equal(t, int64(5400), b.AfterDiscount)
	assert.Equal(t, int64(0), b.Shipping)
	assert.Equal(t, int64(540), b.Tax)
	assert.Equal(t, int64(5940), b.Total)
}

func TestQuoteFixedDiscountClampedToSubtotal(t *testing.T) {
	promo := &model.AppliedPromo{Code: "BIG", DiscountType: model.DiscountFixed, DiscountValue: 9999}
	b := Quote([]model.LineItem{line(1, 500, 1)}, promo, model.PaymentCOD, DefaultConfig())

	assert.Equal(t, int64(500), b.Discount)
	assert.Equal(t, int64(0), b.AfterDiscount)
	assert.Equal(t, int64(200), b.Shipping)
	assert.Equal(t, int64(0), b.Tax)
	assert.Equal(t, int64(200), b.Total)
}

func TestQuoteShippingUsesRawSubtotal(t *testing.T) {
	// subtotal over threshold, but discount would drop it below; free
	// shipping is decided on the raw subtotal.
	promo := &model.AppliedPromo{Code: "HALF", DiscountType: model.DiscountPercent, DiscountValue: 50}
	b := Quote([]model.LineItem{line(1, 5200, 1)}, promo, model.PaymentCOD, DefaultConfig())

	assert.Equal(t, int64(0), b.Shipping)

	// and the inverse: discount cannot unlock free shipping either
	b2 := Quote([]model.LineItem{line(1, 4900, 1)}, nil, model.PaymentCOD, DefaultConfig())
	assert.Equal(t, int64(200), b2.Shipping)
}

func TestQuoteCardFee(t *testing.T) {
	cfg := DefaultConfig()
	b := Quote([]model.LineItem{line(1, 1000, 1)}, nil, model.PaymentCard, cfg)
	assert.Equal(t, cfg.CardFee, b.Fee)

	b = Quote([]model.LineItem{line(1, 1000, 1)}, nil, model.PaymentTransfer, cfg)
	assert.Equal(t, int64(0), b.Fee)
}

func TestQuoteTotalIdentity(t *testing.T) {
	promos := []*model.AppliedPromo{
		nil,
		{Code: "P7", DiscountType: model.DiscountPercent, DiscountValue: 7},
		{Code: "F333", DiscountType: model.DiscountFixed, DiscountValue: 333},
	}
	carts := [][]model.LineItem{
		{},
		{line(1, 1, 1)},
		{line(1, 999, 3), line(2, 1250, 1)},
		{line(1, 10000, 2)},
	}
	for _, p := range promos {
		for _, c := range carts {
			b := Quote(c, p, model.PaymentCard, DefaultConfig())
			assert.Equal(t, b.Total, b.AfterDiscount+b.Shipping+b.Tax+b.Fee)
			assert.GreaterOrEqual(t, b.Subtotal, int64(0))
			assert.GreaterOrEqual(t, b.Discount, int64(0))
			assert.GreaterOrEqual(t, b.AfterDiscount, int64(0))
			assert.GreaterOrEqual(t, b.Tax, int64(0))
		}
	}
}

func TestRoundDivHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(1), roundDiv(5, 10))   // 0.5 -> 1
	assert.Equal(t, int64(0), roundDiv(4, 10))   // 0.4 -> 0
	assert.Equal(t, int64(2), roundDiv(15, 10))  // 1.5 -> 2
	assert.Equal(t, int64(-1), roundDiv(-5, 10)) // -0.5 -> -1
	assert.Equal(t, int64(13), roundDiv(125, 10))
}
