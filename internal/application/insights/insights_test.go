package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/testutil"
)

var today = warranty.MustParseDate("2026-05-25")

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		129999:     "1,29,999",
		1234567:    "12,34,567",
		12345678.5: "1,23,45,678.5",
		499.125:    "499.125",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(in), "FormatINR(%v)", in)
	}
}

func TestBuild_AllRules(t *testing.T) {
	products := []*warranty.Product{
		// 21 days left
		testutil.Product(1, 1, "iPhone", warranty.CategoryElectronics, "2025-06-15", 12, 129999),
		// expired 2026-05-01, 24 days ago
		testutil.Product(2, 1, "Fridge", warranty.CategoryAppliances, "2025-05-01", 12, 40000),
		testutil.Product(3, 1, "TV", warranty.CategoryElectronics, "2026-01-01", 24, 0),
		testutil.Product(4, 1, "Laptop", warranty.CategoryElectronics, "2026-01-01", 24, 50000),
	}

	r := Build(products, today)
	assert.Equal(t, 4, r.TotalProducts)
	assert.Equal(t, 3, r.ActiveCount)
	assert.Equal(t, []string{
		"⚠️ 1 product(s) expiring within 30 days. File preventive claims for: iPhone.",
		"💸 You may have missed ₹40,000 in potential warranty claims from 1 expired product(s).",
		"📱 You track 3 electronics. Tip: Check for software-related issues before hardware warranty expires — they're often covered too.",
		"🔔 Based on your history, consider setting 30-day buffer reminders to avoid missing claim windows.",
		"🛡️ Your active warranties protect ₹1,79,999 in assets. Keep tracking to maximize coverage.",
	}, r.Insights)
}

func TestBuild_GoodStanding(t *testing.T) {
	r := Build([]*warranty.Product{
		testutil.Product(1, 1, "Chair", warranty.CategoryFurniture, "2026-01-01", 24, 0),
	}, today)
	assert.Equal(t, []string{"✅ All warranties are in good standing. You're doing great at tracking your products!"}, r.Insights)
	assert.Equal(t, 1, r.ActiveCount)
}

func TestBuild_OldExpiryWithoutPrice(t *testing.T) {
	r := Build([]*warranty.Product{
		testutil.Product(1, 1, "Old", warranty.CategoryOther, "2020-01-01", 12, 0),
	}, today)
	assert.Equal(t, []string{"✅ All warranties are in good standing. You're doing great at tracking your products!"}, r.Insights)
	assert.Zero(t, r.ActiveCount)
}

func TestService_Generate(t *testing.T) {
	repo := new(testutil.MockProductRepository)
	repo.On("ListAll", context.Background(), int64(1)).Return([]*warranty.Product{}, nil)

	r, err := NewService(repo, risk.FixedClock(today)).Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, r.TotalProducts)
	assert.Len(t, r.Insights, 1)
	repo.AssertExpectations(t)
}
