package risk

import "math"

// ResaleValue is the estimated second-hand price with and without the
// remaining warranty transferred to the buyer.
type ResaleValue struct {
	WithWarranty    int64 `json:"withWarranty"`
	WithoutWarranty int64 `json:"withoutWarranty"`
}

const (
	minRetainedValue   = 0.3
	resaleMarketFactor = 0.65
	annualPremiumRate  = 0.08
)

// EstimateResale values a product of purchasePrice with monthsLeft of a
// totalMonths warranty remaining. Non-positive prices yield a zero estimate.
func EstimateResale(purchasePrice, monthsLeft float64, totalMonths int) ResaleValue {
	if purchasePrice <= 0 {
		return ResaleValue{}
	}

	depreciation := 0.5
	if totalMonths != 0 {
		total := float64(totalMonths)
		depreciation = math.Max(minRetainedValue, 1-((total-monthsLeft)/total)*0.5)
	}

	without := round(purchasePrice * depreciation * resaleMarketFactor)
	premium := round(purchasePrice * annualPremiumRate * (monthsLeft / 12))
	return ResaleValue{WithWarranty: without + premium, WithoutWarranty: without}
}

// round rounds halves up, toward +Inf.
func round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
