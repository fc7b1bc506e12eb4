package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andradelabs/motopecas-backend/internal/cart"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestPackItemsEmptyCartHitsFloors(t *testing.T) {
	box := PackItems(nil)

	assert.True(t, box.HeightCm.Equal(money("2")), "height %s", box.HeightCm)
	assert.True(t, box.WidthCm.Equal(money("11")), "width %s", box.WidthCm)
	assert.True(t, box.LengthCm.Equal(money("16")), "length %s", box.LengthCm)
	assert.True(t, box.WeightKg.Equal(money("0.3")), "weight %s", box.WeightKg)
}

func TestPackItemsDimensionlessItemsHitFloors(t *testing.T) {
	box := PackItems([]cart.LineItem{{ID: "p-default", Quantity: 3}})

	assert.True(t, box.HeightCm.Equal(money("2")))
	assert.True(t, box.WidthCm.Equal(money("11")))
	assert.True(t, box.LengthCm.Equal(money("16")))
	assert.True(t, box.WeightKg.Equal(money("0.3")))
}

func TestPackItemsCartonProfile(t *testing.T) {
	items := []cart.LineItem{{
		ID:       "p-default",
		Quantity: 2,
		WeightKg: money("1"),
		HeightCm: money("10"),
		WidthCm:  money("10"),
		LengthCm: money("10"),
	}}

	box := PackItems(items)

	// volume 2000 * 1.25 margin = 2500, cube root ~= 13.57
	assert.True(t, box.WidthCm.Equal(money("13.57")), "width %s", box.WidthCm)
	assert.True(t, box.HeightCm.Equal(money("10.86")), "height %s", box.HeightCm)
	assert.True(t, box.LengthCm.Equal(money("16.29")), "length %s", box.LengthCm)
	// (0.2 base + 2kg) * 1.1 packaging overhead
	assert.True(t, box.WeightKg.Equal(money("2.42")), "weight %s", box.WeightKg)
}

func TestPackItemsNeverShrinksBelowCarrierMinimums(t *testing.T) {
	items := []cart.LineItem{{
		ID:       "sticker-default",
		Quantity: 1,
		WeightKg: money("0.01"),
		HeightCm: money("0.1"),
		WidthCm:  money("5"),
		LengthCm: money("5"),
	}}

	box := PackItems(items)

	assert.True(t, box.HeightCm.GreaterThanOrEqual(money("2")))
	assert.True(t, box.WidthCm.GreaterThanOrEqual(money("11")))
	assert.True(t, box.LengthCm.GreaterThanOrEqual(money("16")))
	assert.True(t, box.WeightKg.GreaterThanOrEqual(money("0.3")))
}
