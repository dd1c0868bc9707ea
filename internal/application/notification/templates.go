package notification

import (
	"fmt"
	"strconv"

	"github.com/turtacn/warrify/internal/domain/warranty"
)

const (
	footer          = "Visit your Warrify dashboard to take action.\n\n— Warrify AI Warranty Management"
	defaultClaimMsg = "Warranty claim request."
)

// TestReminderSubject and TestReminderBody render the on-demand reminder.
func TestReminderSubject(p *warranty.Product) string {
	return "⚠️ Warranty Reminder: " + p.Name
}

func TestReminderBody(userName string, p *warranty.Product, daysLeft int) string {
	left := "EXPIRED"
	if daysLeft > 0 {
		left = fmt.Sprintf("%d days", daysLeft)
	}
	price := ""
	if p.PurchasePrice != 0 {
		price = "Purchase Price: ₹" + strconv.FormatFloat(p.PurchasePrice, 'f', -1, 64)
	}
	soon := ""
	if daysLeft > 0 && daysLeft <= 30 {
		soon = "⚠️ Your warranty is expiring soon! Consider filing any pending claims."
	}
	return fmt.Sprintf("Hi %s,\n\nThis is a warranty reminder from Warrify.\n\nProduct: %s\nBrand: %s\nPurchase Date: %s\nExpiry Date: %s\nDays Left: %s\n%s\n\n%s\n\n%s",
		userName, p.Name, brandOrNA(p.Brand), p.PurchaseDate, p.ExpiryDate, left, price, soon, footer)
}

// ClaimSubject is "Warranty Claim - {name}" with the invoice number appended
// when known.
func ClaimSubject(p *warranty.Product) string {
	s := "Warranty Claim - " + p.Name
	if p.InvoiceNumber != "" {
		s += " (Inv: " + p.InvoiceNumber + ")"
	}
	return s
}

// ReminderSubject and ReminderBody render the scheduled 30 and 7 day reminders.
func ReminderSubject(p *warranty.Product) string {
	return "⚠️ Warranty Expiring Soon: " + p.Name
}

func ReminderBody(userName string, p *warranty.Product, days int) string {
	return fmt.Sprintf("Hi %s,\n\nYour product %s (%s, purchased %s) warranty expires on %s. You have %d days left.\n\n%s",
		userName, p.Name, brandOrNA(p.Brand), p.PurchaseDate, p.ExpiryDate, days, footer)
}

func brandOrNA(b string) string {
	if b == "" {
		return "N/A"
	}
	return b
}
