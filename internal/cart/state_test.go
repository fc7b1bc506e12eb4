package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func sampleItems() []LineItem {
	return []LineItem{
		{
			ID:       "prod-a-default",
			Name:     "Escapamento Esportivo",
			Price:    money("100.00"),
			Quantity: 2,
			WeightKg: money("1"),
			HeightCm: money("10"),
			WidthCm:  money("10"),
			LengthCm: money("10"),
		},
		{
			ID:       "prod-b-default",
			Name:     "Manete de Freio",
			Price:    money("50.00"),
			Quantity: 1,
			WeightKg: money("0.5"),
			HeightCm: money("5"),
			WidthCm:  money("5"),
			LengthCm: money("5"),
		},
	}
}

func sampleState() *State {
	state := NewState()
	for _, item := range sampleItems() {
		state.Add(item)
	}
	return state
}

func TestAddMergesInsteadOfDuplicating(t *testing.T) {
	state := sampleState()
	require.Len(t, state.Items, 2)

	state.Add(LineItem{ID: "prod-a-default", Name: "Escapamento Esportivo", Price: money("100.00"), Quantity: 3})

	assert.Len(t, state.Items, 2)
	assert.Equal(t, 5, state.Items[0].Quantity)
	assert.Equal(t, 6, state.TotalItems())
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	state := NewState()
	state.Add(LineItem{ID: "x", Price: money("10.00")})
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestUpdateQuantityIsIdempotent(t *testing.T) {
	state := sampleState()
	before, err := json.Marshal(state)
	require.NoError(t, err)

	state.UpdateQuantity("prod-a-default", 2)

	after, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	viaUpdate := sampleState()
	viaUpdate.UpdateQuantity("prod-a-default", 0)

	viaRemove := sampleState()
	viaRemove.Remove("prod-a-default")

	assert.Equal(t, viaRemove.Items, viaUpdate.Items)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	state := sampleState()
	state.UpdateQuantity("prod-b-default", 7)
	assert.Equal(t, 7, state.Items[1].Quantity)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	state := sampleState()
	state.Remove("does-not-exist")
	assert.Len(t, state.Items, 2)
}

func TestTotalsScenario(t *testing.T) {
	state := sampleState()
	assert.True(t, state.ItemsSubtotal().Equal(money("250.00")))

	require.True(t, state.ApplyCoupon("MOTO20"))
	assert.True(t, state.Discount.Equal(money("50.00")))

	state.SetShippingFee(money("15.00"))
	assert.True(t, state.TotalPrice().Equal(money("215.00")))
}

func TestTotalConsistencyThroughSerialization(t *testing.T) {
	state := sampleState()
	state.SetShippingFee(money("22.50"))
	require.True(t, state.ApplyCoupon("MOTO10"))

	blob, err := json.Marshal(state)
	require.NoError(t, err)

	restored := NewState()
	require.NoError(t, json.Unmarshal(blob, restored))

	expected := restored.ItemsSubtotal().Add(restored.ShippingFee).Sub(restored.Discount)
	assert.True(t, restored.TotalPrice().Equal(expected))
	assert.True(t, restored.TotalPrice().Equal(state.TotalPrice()))
}

func TestApplyCouponCaseInsensitive(t *testing.T) {
	lower := sampleState()
	require.True(t, lower.ApplyCoupon("moto10"))

	upper := sampleState()
	require.True(t, upper.ApplyCoupon("MOTO10"))

	assert.True(t, lower.Discount.Equal(upper.Discount))
	assert.True(t, lower.Discount.Equal(money("25.00")))
}

func TestApplyCouponFreeShipping(t *testing.T) {
	state := sampleState()
	state.SetShippingFee(money("30.00"))
	state.Discount = money("10.00")

	require.True(t, state.ApplyCoupon("FRETE"))

	assert.True(t, state.ShippingFee.IsZero())
	assert.True(t, state.FeeQuoted)
	assert.True(t, state.Discount.Equal(money("10.00")))
}

func TestApplyCouponUnknownLeavesStateUntouched(t *testing.T) {
	state := sampleState()
	state.SetShippingFee(money("15.00"))
	before, err := json.Marshal(state)
	require.NoError(t, err)

	assert.False(t, state.ApplyCoupon("BOGUS"))

	after, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestClearResetsEverything(t *testing.T) {
	state := sampleState()
	state.SetShippingFee(money("15.00"))
	require.True(t, state.ApplyCoupon("MOTO10"))

	state.Clear()

	assert.Empty(t, state.Items)
	assert.True(t, state.ShippingFee.IsZero())
	assert.False(t, state.FeeQuoted)
	assert.True(t, state.Discount.IsZero())
	assert.Empty(t, state.CouponCode)
	assert.True(t, state.TotalPrice().IsZero())
}
