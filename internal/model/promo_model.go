package model

import "time"

const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// PromoCode is a row in the promo_codes table. Code matching is
// case-insensitive. TimesUsed is incremented exactly once per order that
// redeemed the code, never by validation.
type PromoCode struct {
	PromoID       int64      `json:"promoid"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discounttype"`
	DiscountValue int64      `json:"discountvalue"`
	ValidFrom     *time.Time `json:"validfrom,omitempty"`
	ValidUntil    *time.Time `json:"validuntil,omitempty"`
	MaxUses       *int       `json:"maxuses,omitempty"`
	TimesUsed     int        `json:"timesused"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// PromoValidation is the outcome of validating a code against a cart
// session. Reason is set only when Valid is false.
type PromoValidation struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	Code          string `json:"code,omitempty"`
	DiscountType  string `json:"discounttype,omitempty"`
	DiscountValue int64  `json:"discountvalue,omitempty"`
}
