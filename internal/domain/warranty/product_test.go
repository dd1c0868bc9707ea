package warranty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/warrify/pkg/errors"
)

func validProduct() *Product {
	return &Product{
		Name:           "Galaxy S24",
		Brand:          "Samsung",
		Category:       CategoryElectronics,
		PurchaseDate:   MustParseDate("2025-06-15"),
		WarrantyMonths: 12,
		ExpiryDate:     MustParseDate("2026-06-15"),
		PurchasePrice:  129999,
	}
}

func TestExpiryFor(t *testing.T) {
	assert.Equal(t, "2026-06-15", ExpiryFor(MustParseDate("2025-06-15"), 12).String())
}

func TestProduct_Validate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	cases := []struct {
		name   string
		mutate func(*Product)
		msg    string
	}{
		{"missing name", func(p *Product) { p.Name = "  " }, "Missing required fields"},
		{"missing category", func(p *Product) { p.Category = "" }, "Missing required fields"},
		{"missing purchase", func(p *Product) { p.PurchaseDate = Date{} }, "Missing required fields"},
		{"zero months", func(p *Product) { p.WarrantyMonths = 0 }, "Missing required fields"},
		{"unknown category", func(p *Product) { p.Category = "Toys" }, "Invalid category"},
		{"negative months", func(p *Product) { p.WarrantyMonths = -1 }, "Warranty duration must be positive"},
		{"negative price", func(p *Product) { p.PurchasePrice = -1 }, "Purchase price cannot be negative"},
		{"expiry before purchase", func(p *Product) { p.ExpiryDate = MustParseDate("2025-01-01") }, "Expiry date cannot precede purchase date"},
		{"claim status", func(p *Product) { p.ClaimStatus = "won" }, "Invalid claim status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(p)
			err := p.Validate()
			assert.True(t, errors.IsCode(err, errors.ErrCodeProductInvalid))
			var ae *errors.AppError
			if assert.True(t, errors.As(err, &ae)) {
				assert.Equal(t, tc.msg, ae.Message)
			}
		})
	}
}

func TestProduct_DaysLeftAndUnderWarranty(t *testing.T) {
	p := validProduct()
	assert.Equal(t, 20, p.DaysLeft(MustParseDate("2026-05-26")))
	assert.True(t, p.UnderWarranty(MustParseDate("2026-06-14")))
	assert.False(t, p.UnderWarranty(MustParseDate("2026-06-15")))
	assert.Equal(t, -5, p.DaysLeft(MustParseDate("2026-06-20")))
}

func TestProductPatch_Validate(t *testing.T) {
	bad := Category("Toys")
	assert.Error(t, ProductPatch{Category: &bad}.Validate())

	status := ClaimPending
	assert.NoError(t, ProductPatch{ClaimStatus: &status}.Validate())

	zero := 0
	assert.Error(t, ProductPatch{WarrantyMonths: &zero}.Validate())
	assert.NoError(t, ProductPatch{}.Validate())
}

func TestNotificationType_ReminderDays(t *testing.T) {
	assert.Equal(t, 30, NotificationReminder30.ReminderDays())
	assert.Equal(t, 7, NotificationReminder7.ReminderDays())
	assert.Equal(t, 0, NotificationTest.ReminderDays())
}
