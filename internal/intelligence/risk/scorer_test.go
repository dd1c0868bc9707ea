package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/domain/warranty"
)

var (
	yearStart = warranty.MustParseDate("2025-01-01")
	yearEnd   = warranty.MustParseDate("2026-01-01")
)

func yearInput(category warranty.Category, name string, price float64) Input {
	return Input{
		PurchaseDate:   yearStart,
		ExpiryDate:     yearEnd,
		Category:       category,
		ProductName:    name,
		PurchasePrice:  price,
		WarrantyMonths: 12,
	}
}

func TestAssessOn_ProbabilityTiers(t *testing.T) {
	cases := []struct {
		name        string
		daysLeft    int
		category    warranty.Category
		wantUsed    int
		wantProb    int
		wantRecPref string
	}{
		{"expired furniture", -31, warranty.CategoryFurniture, 100, 85, "Warranty has expired."},
		{"expired electronics capped", -31, warranty.CategoryElectronics, 100, 95, "Warranty has expired."},
		{"urgent", 10, warranty.CategoryElectronics, 97, 75, "URGENT: File a preventive claim NOW."},
		{"inspection", 25, warranty.CategoryVehicle, 93, 65, "Schedule a thorough inspection"},
		{"monitor", 60, warranty.CategoryVehicle, 84, 65, "Monitor for early signs of Battery failure."},
		{"over sixty percent", 110, warranty.CategoryVehicle, 70, 40, "Your product is in good shape."},
		{"over forty percent", 200, warranty.CategoryFurniture, 45, 25, "Your product is in good shape."},
		{"fresh appliance", 300, warranty.CategoryAppliances, 18, 20, "Your product is in good shape."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			today := yearEnd.AddDays(-tc.daysLeft)
			got := AssessOn(today, yearInput(tc.category, "Thing", 1000))
			assert.Equal(t, tc.daysLeft, got.DaysLeft)
			assert.Equal(t, tc.wantUsed, got.UsedPercent)
			assert.Equal(t, tc.wantProb, got.FailureProbability)
			assert.Contains(t, got.Recommendation, tc.wantRecPref)
		})
	}
}

func TestAssessOn_RecommendationBoundaries(t *testing.T) {
	in := yearInput(warranty.CategoryElectronics, "Pixel Phone", 0)

	rec := func(daysLeft int) string {
		return AssessOn(yearEnd.AddDays(-daysLeft), in).Recommendation
	}

	assert.Equal(t,
		"URGENT: File a preventive claim NOW. Common issues at this age: Battery degradation, Screen flickering. Warranty expires in 0 days.",
		rec(0))
	assert.Equal(t,
		"URGENT: File a preventive claim NOW. Common issues at this age: Battery degradation, Screen flickering. Warranty expires in 15 days.",
		rec(15))
	assert.Equal(t,
		"Schedule a thorough inspection before warranty expires. Watch for: Battery degradation, Screen flickering.",
		rec(16))
	assert.Equal(t,
		"Schedule a thorough inspection before warranty expires. Watch for: Battery degradation, Screen flickering.",
		rec(30))
	assert.Equal(t, "Monitor for early signs of Battery degradation. Consider filing any pending issues.", rec(31))
	assert.Equal(t, "Monitor for early signs of Battery degradation. Consider filing any pending issues.", rec(90))
	assert.Equal(t, "Your product is in good shape. Continue regular use.", rec(91))
	assert.Equal(t, "Warranty has expired. Consider extended warranty or replacement plans.", rec(-1))
}

func TestAssessOn_RepairCost(t *testing.T) {
	// 100000 * 0.3 * (1 + 10/100)
	got := AssessOn(yearEnd.AddDays(-300), yearInput(warranty.CategoryFurniture, "Sofa", 100000))
	assert.Equal(t, 10, got.FailureProbability)
	assert.Equal(t, int64(33000), got.EstimatedRepairCost)

	// Unknown price uses the flat fallback.
	got = AssessOn(yearEnd.AddDays(-300), yearInput(warranty.CategoryFurniture, "Sofa", 0))
	assert.Equal(t, int64(5500), got.EstimatedRepairCost)
	assert.Equal(t, ResaleValue{}, got.ResaleValue)
}

func TestAssessOn_ZeroLengthWarranty(t *testing.T) {
	day := warranty.MustParseDate("2026-03-01")
	in := Input{PurchaseDate: day, ExpiryDate: day, Category: warranty.CategoryOther, ProductName: "Gadget", WarrantyMonths: 0}

	got := AssessOn(day, in)
	assert.Equal(t, 0, got.DaysLeft)
	assert.Equal(t, 100, got.UsedPercent)
	assert.Equal(t, 65, got.FailureProbability)
	assert.Equal(t, []string{"General wear and tear", "Component degradation"}, got.CommonIssues)
}

func TestAssessOn_UsedPercentClamped(t *testing.T) {
	// Evaluated before the purchase date, the raw percentage is negative.
	got := AssessOn(yearStart.AddDays(-30), yearInput(warranty.CategoryFurniture, "Desk", 0))
	assert.Equal(t, 0, got.UsedPercent)
	assert.Equal(t, 395, got.DaysLeft)
}

func TestAssessOn_CenturiesLongWindow(t *testing.T) {
	in := Input{
		PurchaseDate:   warranty.MustParseDate("1500-01-01"),
		ExpiryDate:     warranty.MustParseDate("9999-12-31"),
		Category:       warranty.CategoryFurniture,
		ProductName:    "Chair",
		WarrantyMonths: 12,
	}
	got := AssessOn(warranty.MustParseDate("2026-05-26"), in)
	assert.Equal(t, 2912297, got.DaysLeft)
	assert.Equal(t, 6, got.UsedPercent)
}

// A flagship phone bought 2025-06-15 with a 12 month warranty.
func TestScorer_EndToEnd(t *testing.T) {
	purchase := warranty.MustParseDate("2025-06-15")
	in := Input{
		PurchaseDate:   purchase,
		ExpiryDate:     warranty.ExpiryFor(purchase, 12),
		Category:       warranty.CategoryElectronics,
		ProductName:    "iPhone 15 Pro",
		PurchasePrice:  129999,
		WarrantyMonths: 12,
	}
	require.Equal(t, "2026-06-15", in.ExpiryDate.String())

	t.Run("21 days left", func(t *testing.T) {
		got := NewScorer(FixedClock(warranty.MustParseDate("2026-05-25"))).Assess(in)
		assert.Equal(t, 21, got.DaysLeft)
		assert.Equal(t, 94, got.UsedPercent)
		assert.Equal(t, 75, got.FailureProbability)
		assert.Equal(t, int64(68249), got.EstimatedRepairCost)
		assert.Equal(t, ResaleValue{WithWarranty: 45321, WithoutWarranty: 44714}, got.ResaleValue)
		assert.Equal(t,
			"Schedule a thorough inspection before warranty expires. Watch for: Battery degradation, Screen flickering.",
			got.Recommendation)
	})

	t.Run("20 days left", func(t *testing.T) {
		got := NewScorer(FixedClock(warranty.MustParseDate("2026-05-26"))).Assess(in)
		assert.Equal(t, 20, got.DaysLeft)
		assert.Equal(t, 95, got.UsedPercent)
		assert.Equal(t, 75, got.FailureProbability)
		assert.Equal(t, ResaleValue{WithWarranty: 45175, WithoutWarranty: 44597}, got.ResaleValue)
		assert.Contains(t, got.Recommendation, "Schedule a thorough inspection")
	})
}

func TestNewScorer_DefaultsToSystemClock(t *testing.T) {
	s := NewScorer(nil)
	assert.IsType(t, SystemClock{}, s.clock)
	assert.False(t, s.Today().IsZero())
}

func TestInputFor(t *testing.T) {
	p := &warranty.Product{
		Name: "LG Washing Machine", Category: warranty.CategoryAppliances,
		PurchaseDate: yearStart, ExpiryDate: yearEnd, PurchasePrice: 32000, WarrantyMonths: 12,
	}
	in := InputFor(p)
	assert.Equal(t, "LG Washing Machine", in.ProductName)
	assert.Equal(t, warranty.CategoryAppliances, in.Category)
	assert.Equal(t, 12, in.WarrantyMonths)
	assert.Equal(t, 32000.0, in.PurchasePrice)
}
