package testutil

import (
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
)

// Product returns a stored-looking product owned by userID. purchase is
// YYYY-MM-DD; expiry is derived from months.
func Product(id, userID int64, name string, category warranty.Category, purchase string, months int, price float64) *warranty.Product {
	pd := warranty.MustParseDate(purchase)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &warranty.Product{
		ID:             id,
		UserID:         userID,
		Name:           name,
		Category:       category,
		PurchaseDate:   pd,
		WarrantyMonths: months,
		ExpiryDate:     warranty.ExpiryFor(pd, months),
		PurchasePrice:  price,
		ClaimStatus:    warranty.ClaimNone,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func User(id int64, name, email string) *warranty.User {
	return &warranty.User{
		ID:        id,
		Name:      name,
		Email:     email,
		City:      warranty.DefaultCity,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
