// Package warranty holds the Warrify domain model: users, the products they
// register, and the notification log that records every reminder and claim
// email sent about those products.
package warranty

import (
	"strings"
	"time"

	"github.com/turtacn/warrify/pkg/errors"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryAppliances  Category = "Appliances"
	CategoryFurniture   Category = "Furniture"
	CategoryVehicle     Category = "Vehicle"
	CategoryAccessories Category = "Accessories"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryAppliances,
	CategoryFurniture,
	CategoryVehicle,
	CategoryAccessories,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ClaimStatus tracks a warranty claim's progress.
type ClaimStatus string

const (
	ClaimNone       ClaimStatus = "none"
	ClaimPending    ClaimStatus = "pending"
	ClaimSuccessful ClaimStatus = "successful"
	ClaimRejected   ClaimStatus = "rejected"
)

// Valid reports whether s is a known claim status.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimNone, ClaimPending, ClaimSuccessful, ClaimRejected:
		return true
	}
	return false
}

// Product is a purchased item registered by a user.
type Product struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	Name           string      `json:"product_name"`
	Brand          string      `json:"brand"`
	Category       Category    `json:"category"`
	PurchaseDate   Date        `json:"purchase_date"`
	WarrantyMonths int         `json:"warranty_months"`
	ExpiryDate     Date        `json:"expiry_date"`
	PurchasePrice  float64     `json:"purchase_price"`
	InvoiceFileURL string      `json:"invoice_file_url,omitempty"`
	InvoiceText    string      `json:"invoice_text,omitempty"`
	InvoiceNumber  string      `json:"invoice_number,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	ClaimStatus    ClaimStatus `json:"claim_status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ExpiryFor is the canonical expiry computation: purchase date plus the
// warranty duration in calendar months.
func ExpiryFor(purchase Date, warrantyMonths int) Date {
	return purchase.AddMonths(warrantyMonths)
}

// Validate checks the invariants required before a product is stored or scored.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" || p.Category == "" || p.PurchaseDate.IsZero() ||
		p.WarrantyMonths == 0 || p.ExpiryDate.IsZero() {
		return errors.New(errors.ErrCodeProductInvalid, "Missing required fields")
	}
	if !p.Category.Valid() {
		return errors.New(errors.ErrCodeProductInvalid, "Invalid category").WithDetail(string(p.Category))
	}
	if p.WarrantyMonths < 0 {
		return errors.New(errors.ErrCodeProductInvalid, "Warranty duration must be positive")
	}
	if p.PurchasePrice < 0 {
		return errors.New(errors.ErrCodeProductInvalid, "Purchase price cannot be negative")
	}
	if p.ExpiryDate.Before(p.PurchaseDate) {
		return errors.New(errors.ErrCodeProductInvalid, "Expiry date cannot precede purchase date")
	}
	if p.ClaimStatus != "" && !p.ClaimStatus.Valid() {
		return errors.New(errors.ErrCodeProductInvalid, "Invalid claim status").WithDetail(string(p.ClaimStatus))
	}
	return nil
}

// DaysLeft returns the signed whole days from today to the expiry date.
// Negative values mean the warranty has lapsed.
func (p *Product) DaysLeft(today Date) int {
	return today.DaysUntil(p.ExpiryDate)
}

// UnderWarranty reports whether the expiry date is still ahead of today.
func (p *Product) UnderWarranty(today Date) bool {
	return p.DaysLeft(today) > 0
}

// ProductPatch is a partial update. Nil fields keep their stored value.
type ProductPatch struct {
	Name           *string      `json:"productName"`
	Brand          *string      `json:"brand"`
	Category       *Category    `json:"category"`
	PurchaseDate   *Date        `json:"purchaseDate"`
	WarrantyMonths *int         `json:"warrantyMonths"`
	ExpiryDate     *Date        `json:"expiryDate"`
	PurchasePrice  *float64     `json:"purchasePrice"`
	InvoiceFileURL *string      `json:"invoiceFileUrl"`
	InvoiceText    *string      `json:"invoiceText"`
	InvoiceNumber  *string      `json:"invoiceNumber"`
	Notes          *string      `json:"notes"`
	ClaimStatus    *ClaimStatus `json:"claimStatus"`
}

// Validate rejects values that would break Product invariants.
func (p ProductPatch) Validate() error {
	if p.Category != nil && !p.Category.Valid() {
		return errors.New(errors.ErrCodeProductInvalid, "Invalid category").WithDetail(string(*p.Category))
	}
	if p.ClaimStatus != nil && !p.ClaimStatus.Valid() {
		return errors.New(errors.ErrCodeProductInvalid, "Invalid claim status").WithDetail(string(*p.ClaimStatus))
	}
	if p.WarrantyMonths != nil && *p.WarrantyMonths <= 0 {
		return errors.New(errors.ErrCodeProductInvalid, "Warranty duration must be positive")
	}
	if p.PurchasePrice != nil && *p.PurchasePrice < 0 {
		return errors.New(errors.ErrCodeProductInvalid, "Purchase price cannot be negative")
	}
	return nil
}

// ProductFilter narrows a user's product listing.
type ProductFilter struct {
	Search       string
	Category     string
	DateFrom     Date
	DateTo       Date
	ExpiringSoon bool
	// Today anchors ExpiringSoon; it covers Today through Today+30.
	Today Date
}
