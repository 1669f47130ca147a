package pricing

import (
	"os"
	"strconv"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Config holds the storefront pricing constants. All amounts are integer
// currency units; TaxRatePercent is a whole percentage so tax math stays
// integral.
type Config struct {
	FreeShippingThreshold int64
	FlatShippingFee       int64
	TaxRatePercent        int64
	CardFee               int64
}

func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: 5000,
		FlatShippingFee:       200,
		TaxRatePercent:        10,
		CardFee:               100,
	}
}

// ConfigFromEnv returns DefaultConfig with any of the pricing env vars
// (FREE_SHIPPING_THRESHOLD, FLAT_SHIPPING_FEE, TAX_RATE_PERCENT, CARD_FEE)
// applied on top.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, ok := envInt64("FREE_SHIPPING_THRESHOLD"); ok {
		cfg.FreeShippingThreshold = v
	}
	if v, ok := envInt64("FLAT_SHIPPING_FEE"); ok {
		cfg.FlatShippingFee = v
	}
	if v, ok := envInt64("TAX_RATE_PERCENT"); ok {
		cfg.TaxRatePercent = v
	}
	if v, ok := envInt64("CARD_FEE"); ok {
		cfg.CardFee = v
	}
	return cfg
}

func envInt64(key string) (int64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Breakdown is the derived price of a cart. Total is always
// AfterDiscount + Shipping + Tax + Fee and every field is non-negative.
type Breakdown struct {
	Subtotal      int64 `json:"subtotal"`
	Discount      int64 `json:"discount"`
	AfterDiscount int64 `json:"afterdiscount"`
	Shipping      int64 `json:"shipping"`
	Tax           int64 `json:"tax"`
	Fee           int64 `json:"fee"`
	Total         int64 `json:"total"`
}

// Quote computes the price breakdown for a cart. Steps run in a fixed order:
// subtotal, discount (percent rounded once, fixed clamped to subtotal),
// shipping against the raw subtotal so a discount cannot unlock free
// shipping, tax on the discounted amount, then the card fee.
func Quote(lines []model.LineItem, promo *model.AppliedPromo, paymentMethod string, cfg Config) Breakdown {
	var b Breakdown

	for _, li := range lines {
		b.Subtotal += li.UnitPrice * int64(li.Quantity)
	}

	if promo != nil {
		switch promo.DiscountType {
		case model.DiscountPercent:
			b.Discount = roundDiv(b.Subtotal*promo.DiscountValue, 100)
		case model.DiscountFixed:
			b.Discount = promo.DiscountValue
			if b.Discount > b.Subtotal {
				b.Discount = b.Subtotal
			}
		}
	}

	b.AfterDiscount = b.Subtotal - b.Discount
	if b.AfterDiscount < 0 {
		b.AfterDiscount = 0
	}

	if b.Subtotal < cfg.FreeShippingThreshold {
		b.Shipping = cfg.FlatShippingFee
	}

	b.Tax = roundDiv(b.AfterDiscount*cfg.TaxRatePercent, 100)

	if paymentMethod == model.PaymentCard {
		b.Fee = cfg.CardFee
	}

	b.Total = b.AfterDiscount + b.Shipping + b.Tax + b.Fee
	return b
}

// roundDiv divides n by d rounding half away from zero.
func roundDiv(n, d int64) int64 {
	q := n / d
	r := n % d
	if r < 0 {
		r = -r
	}
	if 2*r >= d {
		if n < 0 {
			return q - 1
		}
		return q + 1
	}
	return q
}
