package client

import "time"

// Dates are "YYYY-MM-DD" strings throughout.

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"product_name"`
	Brand          string    `json:"brand"`
	Category       string    `json:"category"`
	PurchaseDate   string    `json:"purchase_date"`
	WarrantyMonths int       `json:"warranty_months"`
	ExpiryDate     string    `json:"expiry_date"`
	PurchasePrice  float64   `json:"purchase_price"`
	InvoiceFileURL string    `json:"invoice_file_url,omitempty"`
	InvoiceNumber  string    `json:"invoice_number,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	ClaimStatus    string    `json:"claim_status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewProduct is the create payload. ExpiryDate is required alongside
// WarrantyMonths.
type NewProduct struct {
	Name           string  `json:"productName"`
	Brand          string  `json:"brand,omitempty"`
	Category       string  `json:"category"`
	PurchaseDate   string  `json:"purchaseDate"`
	WarrantyMonths int     `json:"warrantyMonths"`
	ExpiryDate     string  `json:"expiryDate"`
	PurchasePrice  float64 `json:"purchasePrice,omitempty"`
	InvoiceFileURL string  `json:"invoiceFileUrl,omitempty"`
	InvoiceText    string  `json:"invoiceText,omitempty"`
	InvoiceNumber  string  `json:"invoiceNumber,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// ProductUpdate is a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name           *string  `json:"productName,omitempty"`
	Brand          *string  `json:"brand,omitempty"`
	Category       *string  `json:"category,omitempty"`
	PurchaseDate   *string  `json:"purchaseDate,omitempty"`
	WarrantyMonths *int     `json:"warrantyMonths,omitempty"`
	ExpiryDate     *string  `json:"expiryDate,omitempty"`
	PurchasePrice  *float64 `json:"purchasePrice,omitempty"`
	InvoiceNumber  *string  `json:"invoiceNumber,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	ClaimStatus    *string  `json:"claimStatus,omitempty"`
}

type ProductFilter struct {
	Search       string
	Category     string
	DateFrom     string
	DateTo       string
	ExpiringSoon bool
}

type ResaleValue struct {
	WithWarranty    int64 `json:"withWarranty"`
	WithoutWarranty int64 `json:"withoutWarranty"`
}

type RiskAssessment struct {
	FailureProbability  int         `json:"failureProbability"`
	CommonIssues        []string    `json:"commonIssues"`
	EstimatedRepairCost int64       `json:"estimatedRepairCost"`
	Recommendation      string      `json:"recommendation"`
	ResaleValue         ResaleValue `json:"resaleValue"`
	DaysLeft            int         `json:"daysLeft"`
	UsedPercent         int         `json:"usedPercent"`
}

type InvoiceCheck struct {
	Exists      bool   `json:"exists"`
	ProductName string `json:"productName,omitempty"`
}

type Notification struct {
	ID           int64      `json:"id"`
	ProductID    int64      `json:"product_id"`
	ProductName  string     `json:"product_name,omitempty"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

type SendResult struct {
	Message string `json:"message"`
	To      string `json:"to,omitempty"`
}

type Insights struct {
	Insights      []string `json:"insights"`
	TotalProducts int      `json:"totalProducts"`
	ActiveCount   int      `json:"activeCount"`
}
