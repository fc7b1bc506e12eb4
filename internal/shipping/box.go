package shipping

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/internal/cart"
)

// Box is the single equivalent carton a cart ships in. Parts vary wildly in
// shape (levers, fairings, exhausts), so instead of real bin packing we
// collapse everything into one cube-rooted volume and stretch it into a
// carton profile.
type Box struct {
	HeightCm decimal.Decimal `json:"height_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
	LengthCm decimal.Decimal `json:"length_cm"`
	WeightKg decimal.Decimal `json:"weight_kg"`
}

var (
	baseBoxWeightKg = decimal.NewFromFloat(0.2)
	volumeMargin    = decimal.NewFromFloat(1.25)
	weightMargin    = decimal.NewFromFloat(1.1)
	heightSpread    = decimal.NewFromFloat(0.8)
	lengthSpread    = decimal.NewFromFloat(1.2)

	minHeightCm = decimal.NewFromInt(2)
	minWidthCm  = decimal.NewFromInt(11)
	minLengthCm = decimal.NewFromInt(16)
	minWeightKg = decimal.NewFromFloat(0.3)
)

// PackItems derives the shipping carton for a set of cart items. Pure
// function: volumes and weights are summed per quantity, padded by a safety
// margin, and floored at the carrier's minimum accepted dimensions so an
// empty or dimensionless cart still yields a quotable box.
func PackItems(items []cart.LineItem) Box {
	totalWeight := baseBoxWeightKg
	totalVolume := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totalWeight = totalWeight.Add(item.WeightKg.Mul(qty))
		totalVolume = totalVolume.Add(item.HeightCm.Mul(item.WidthCm).Mul(item.LengthCm).Mul(qty))
	}

	cubic := cubeRoot(totalVolume.Mul(volumeMargin))

	return Box{
		HeightCm: decimal.Max(cubic.Mul(heightSpread), minHeightCm).Round(2),
		WidthCm:  decimal.Max(cubic, minWidthCm).Round(2),
		LengthCm: decimal.Max(cubic.Mul(lengthSpread), minLengthCm).Round(2),
		WeightKg: decimal.Max(totalWeight.Mul(weightMargin), minWeightKg).Round(2),
	}
}

func cubeRoot(value decimal.Decimal) decimal.Decimal {
	f, _ := value.Float64()
	if f <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Cbrt(f))
}
