package cart

import (
	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/internal/coupons"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
)

// LineItem is one product+variant entry with its own quantity. Name, price
// and image are snapshots taken when the item was added; later catalog
// changes do not touch existing carts.
type LineItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ImageURL     string          `json:"image_url"`
	VariantLabel string          `json:"variant_label,omitempty"`

	// Physical attributes used only by the shipping box calculation.
	WeightKg decimal.Decimal `json:"weight_kg"`
	HeightCm decimal.Decimal `json:"height_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
	LengthCm decimal.Decimal `json:"length_cm"`
}

// State is the full cart for one session. It serializes to a single JSON
// blob in the durable store.
type State struct {
	Items       []LineItem      `json:"items"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	// FeeQuoted distinguishes a legitimately-zero fee from one that was
	// never calculated; checkout requires it.
	FeeQuoted  bool            `json:"fee_quoted"`
	Discount   decimal.Decimal `json:"discount"`
	CouponCode string          `json:"coupon_code,omitempty"`
}

// NewState returns an empty cart.
func NewState() *State {
	return &State{
		Items:       []LineItem{},
		ShippingFee: decimal.Zero,
		Discount:    decimal.Zero,
	}
}

// Add merges by line item id: an existing entry has the quantity added,
// a new entry is appended. Quantities below one default to one.
func (s *State) Add(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i].Quantity += item.Quantity
			return
		}
	}
	s.Items = append(s.Items, item)
}

// Remove deletes the line item with the given id. Removing an absent id is
// a no-op, not an error.
func (s *State) Remove(id string) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity exactly. Zero or negative removes the
// item.
func (s *State) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and resets the shipping fee and discount.
func (s *State) Clear() {
	s.Items = []LineItem{}
	s.ShippingFee = decimal.Zero
	s.FeeQuoted = false
	s.Discount = decimal.Zero
	s.CouponCode = ""
}

// SetShippingFee records a calculated fee.
func (s *State) SetShippingFee(fee decimal.Decimal) {
	s.ShippingFee = fee
	s.FeeQuoted = true
}

// ApplyCoupon looks the code up in the fixed table and applies it.
// Percentage coupons set the discount from the current subtotal;
// the free-shipping coupon zeroes the fee and leaves the discount alone.
// Unknown codes return false and change nothing.
func (s *State) ApplyCoupon(code string) bool {
	coupon, ok := coupons.Lookup(code)
	if !ok {
		return false
	}
	switch coupon.Kind {
	case enums.CouponKindFreeShipping:
		s.SetShippingFee(decimal.Zero)
	default:
		s.Discount = coupon.DiscountFor(s.ItemsSubtotal())
	}
	s.CouponCode = coupon.Code
	return true
}

// TotalItems is the sum of all quantities.
func (s *State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// ItemsSubtotal is the sum of price times quantity, always recomputed.
func (s *State) ItemsSubtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// TotalPrice is subtotal plus shipping fee minus discount.
func (s *State) TotalPrice() decimal.Decimal {
	return s.ItemsSubtotal().Add(s.ShippingFee).Sub(s.Discount)
}
