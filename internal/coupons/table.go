package coupons

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/pkg/enums"
)

// Coupon is one entry of the promotional code table.
type Coupon struct {
	Code       string
	Kind       enums.CouponKind
	Percentage decimal.Decimal
}

// The table is fixed in code for now. Moving it to a DB table is the
// expected extension point when marketing needs self-service codes.
var table = map[string]Coupon{
	"MOTO10": {Code: "MOTO10", Kind: enums.CouponKindPercentage, Percentage: decimal.NewFromInt(10)},
	"MOTO20": {Code: "MOTO20", Kind: enums.CouponKindPercentage, Percentage: decimal.NewFromInt(20)},
	"FRETE":  {Code: "FRETE", Kind: enums.CouponKindFreeShipping},
}

// Lookup resolves a user-supplied code case-insensitively.
func Lookup(code string) (Coupon, bool) {
	coupon, ok := table[strings.ToUpper(strings.TrimSpace(code))]
	return coupon, ok
}

// DiscountFor computes the discount a percentage coupon grants over the
// given items subtotal. Free-shipping coupons grant no subtotal discount.
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if c.Kind != enums.CouponKindPercentage {
		return decimal.Zero
	}
	return subtotal.Mul(c.Percentage).Div(decimal.NewFromInt(100)).Round(2)
}
