package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

func promoFixture() *model.PromoCode {
	return &model.PromoCode{
		PromoID:       1,
		Code:          "SAVE10",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 10,
	}
}

func TestCheckPromoAccepts(t *testing.T) {
	v := CheckPromo(promoFixture(), time.Now())
	assert.True(t, v.Valid)
	assert.Equal(t, "SAVE10", v.Code)
	assert.Equal(t, model.DiscountPercent, v.DiscountType)
	assert.Equal(t, int64(10), v.DiscountValue)
}

func TestCheckPromoNotYetValid(t *testing.T) {
	p := promoFixture()
	from := time.Now().Add(24 * time.Hour)
	p.ValidFrom = &from

	v := CheckPromo(p, time.Now())
	assert.False(t, v.Valid)
	assert.Equal(t, "not yet valid", v.Reason)
}

func TestCheckPromoExpired(t *testing.T) {
	p := promoFixture()
	until := time.Now().Add(-time.Hour)
	p.ValidUntil = &until

	v := CheckPromo(p, time.Now())
	assert.False(t, v.Valid)
	assert.Equal(t, "expired", v.Reason)
}

func TestCheckPromoUsageLimitBeatsDateWindow(t *testing.T) {
	// maxUses=1, timesUsed=1 rejects regardless of a perfectly open window
	p := promoFixture()
	from := time.Now().Add(-time.Hour)
	until := time.Now().Add(time.Hour)
	one := 1
	p.ValidFrom = &from
	p.ValidUntil = &until
	p.MaxUses = &one
	p.TimesUsed = 1

	v := CheckPromo(p, time.Now())
	assert.False(t, v.Valid)
	assert.Equal(t, "usage limit reached", v.Reason)
}

func TestCheckPromoInvalidPercentValue(t *testing.T) {
	p := promoFixture()
	p.DiscountValue = 150

	v := CheckPromo(p, time.Now())
	assert.False(t, v.Valid)
	assert.Equal(t, "invalid discount", v.Reason)
}

func TestCheckPromoInvalidFixedValue(t *testing.T) {
	p := promoFixture()
	p.DiscountType = model.DiscountFixed
	p.DiscountValue = 0

	v := CheckPromo(p, time.Now())
	assert.False(t, v.Valid)
	assert.Equal(t, "invalid discount", v.Reason)
}

func TestCheckPromoFirstFailureWins(t *testing.T) {
	// both not-yet-valid and exhausted: rule order says date window first
	p := promoFixture()
	from := time.Now().Add(time.Hour)
	one := 1
	p.ValidFrom = &from
	p.MaxUses = &one
	p.TimesUsed = 5

	v := CheckPromo(p, time.Now())
	assert.Equal(t, "not yet valid", v.Reason)
}

func TestValidatePromoRecord(t *testing.T) {
	p := promoFixture()
	assert.NoError(t, validatePromoRecord(p))

	p.Code = "  "
	assert.Error(t, validatePromoRecord(p))

	p = promoFixture()
	p.DiscountType = "bogo"
	assert.Error(t, validatePromoRecord(p))

	p = promoFixture()
	p.DiscountValue = 101
	assert.Error(t, validatePromoRecord(p))

	zero := 0
	p = promoFixture()
	p.MaxUses = &zero
	assert.Error(t, validatePromoRecord(p))
}
