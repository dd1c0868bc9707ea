// Package responder answers assistant queries from the user's own product list
// with keyword rules only. It performs no I/O and backs the generative
// assistant whenever that path is unavailable.
package responder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/servicedir"
	"github.com/turtacn/warrify/internal/intelligence/taxonomy"
)

// DefaultIssue is used in claim emails when the query names no issue.
const DefaultIssue = "a technical issue requiring immediate attention"

// Intent is the query class selected by keyword matching.
type Intent int

const (
	IntentDefault Intent = iota
	IntentClaimEmail
	IntentWarrantyStatus
	IntentInvoice
	IntentService
	IntentGreeting
)

func (i Intent) String() string {
	switch i {
	case IntentClaimEmail:
		return "claim_email"
	case IntentWarrantyStatus:
		return "warranty_status"
	case IntentInvoice:
		return "invoice"
	case IntentService:
		return "service"
	case IntentGreeting:
		return "greeting"
	}
	return "default"
}

// intentKeywords is checked top to bottom; the first intent with any keyword
// present in the lowercased query wins.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentClaimEmail, []string{"draft_email", "complaint", "claim", "email"}},
	{IntentWarrantyStatus, []string{"warranty", "expir", "status", "which", "month"}},
	{IntentInvoice, []string{"invoice", "bill", "receipt"}},
	{IntentService, []string{"service", "support", "contact", "help", "care", "center", "centre"}},
	{IntentGreeting, []string{"hello", "hi", "hey"}},
}

var issuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)issue[:\s]+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)problem[:\s]+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)facing[:\s]+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)experiencing[:\s]+(.+?)(?:\.|$)`),
}

// Classify returns the intent of query.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, ik := range intentKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(q, kw) {
				return ik.intent
			}
		}
	}
	return IntentDefault
}

// ExtractIssue pulls the issue description out of a claim request, falling
// back to DefaultIssue.
func ExtractIssue(query string) string {
	for _, re := range issuePatterns {
		m := re.FindStringSubmatch(query)
		if len(m) > 1 {
			if issue := strings.TrimSpace(m[1]); issue != "" {
				return issue
			}
		}
	}
	return DefaultIssue
}

// Responder renders rule-based replies.
type Responder struct {
	dir *servicedir.Directory
}

// New returns a Responder using dir for service lookups. A nil dir means the
// built-in directory.
func New(dir *servicedir.Directory) *Responder {
	if dir == nil {
		dir = servicedir.Default()
	}
	return &Responder{dir: dir}
}

// Respond answers query for userName given their products, as of today.
func (r *Responder) Respond(query string, products []*warranty.Product, userName string, today warranty.Date) string {
	q := strings.ToLower(query)
	switch Classify(query) {
	case IntentClaimEmail:
		return r.claimEmail(query, q, products, userName, today)
	case IntentWarrantyStatus:
		return r.warrantyStatus(q, products, today)
	case IntentInvoice:
		return r.invoice(q, products)
	case IntentService:
		return r.service(q)
	case IntentGreeting:
		return greeting(userName)
	}
	return helpText
}

// SelectClaimProduct picks the product a claim request refers to: invoice
// number first, then product name, then brand, then the first product.
func SelectClaimProduct(q string, products []*warranty.Product) *warranty.Product {
	q = strings.ToLower(q)
	for _, p := range products {
		if p.InvoiceNumber != "" && strings.Contains(q, strings.ToLower(p.InvoiceNumber)) {
			return p
		}
	}
	if p := matchName(q, products); p != nil {
		return p
	}
	for _, p := range products {
		if brandMentioned(q, p) {
			return p
		}
	}
	if len(products) > 0 {
		return products[0]
	}
	return nil
}

func matchName(q string, products []*warranty.Product) *warranty.Product {
	for _, p := range products {
		if strings.Contains(q, strings.ToLower(p.Name)) {
			return p
		}
	}
	return nil
}

// brandMentioned never matches an empty brand.
func brandMentioned(q string, p *warranty.Product) bool {
	return p.Brand != "" && strings.Contains(q, strings.ToLower(p.Brand))
}

func (r *Responder) claimEmail(query, q string, products []*warranty.Product, userName string, today warranty.Date) string {
	p := SelectClaimProduct(q, products)
	if p == nil {
		return "Please mention the product name so I can draft a specific complaint email for you."
	}
	issue := ExtractIssue(query)
	failures := taxonomy.CommonFailures(string(p.Category), p.Name)

	inv := ""
	invLine := ""
	if p.InvoiceNumber != "" {
		inv = " (Inv: " + p.InvoiceNumber + ")"
		invLine = "- Invoice Number: " + p.InvoiceNumber
	}
	priceLine := ""
	if p.PurchasePrice != 0 {
		priceLine = "- Purchase Price: ₹" + FormatAmount(p.PurchasePrice)
	}
	state := "recently out of warranty (expired on " + p.ExpiryDate.String() + ")"
	if p.UnderWarranty(today) {
		state = "under warranty (expiring on " + p.ExpiryDate.String() + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Subject:** Warranty Service Request – %s%s\n\n", p.Name, inv)
	fmt.Fprintf(&b, "Dear %s Support Team,\n\n", orDefault(p.Brand, "Customer"))
	fmt.Fprintf(&b, "I am writing to formally request a warranty claim for my %s, which I purchased on %s. \n\n", p.Name, p.PurchaseDate)
	fmt.Fprintf(&b, "The product is currently %s and has developed %s.\n\n", state, issue)
	b.WriteString("**Product Details:**\n")
	fmt.Fprintf(&b, "- Product: %s\n", p.Name)
	fmt.Fprintf(&b, "- Brand: %s\n", orDefault(p.Brand, "N/A"))
	fmt.Fprintf(&b, "- Purchase Date: %s\n", p.PurchaseDate)
	fmt.Fprintf(&b, "- Warranty Expiry: %s\n", p.ExpiryDate)
	b.WriteString(invLine + "\n")
	b.WriteString(priceLine + "\n\n")
	fmt.Fprintf(&b, "**Common issues reported for this product type include:** %s.\n\n", strings.Join(failures, ", "))
	b.WriteString("I would appreciate your guidance on the next steps for repair or replacement under the warranty terms. I have the original invoice ready for verification.\n\n")
	b.WriteString("Looking forward to your prompt response.\n\n")
	b.WriteString("Best regards,\n")
	b.WriteString(userName)
	return b.String()
}

func (r *Responder) warrantyStatus(q string, products []*warranty.Product, today warranty.Date) string {
	for _, p := range products {
		if !strings.Contains(q, strings.ToLower(p.Name)) && !brandMentioned(q, p) {
			continue
		}
		daysLeft := p.DaysLeft(today)
		if daysLeft < 0 {
			return fmt.Sprintf("⚠️ The warranty for **%s** expired %d days ago (on %s). You may have missed a claim opportunity.",
				p.Name, -daysLeft, p.ExpiryDate)
		}
		top := taxonomy.Top(taxonomy.CommonFailures(string(p.Category), p.Name), 2)
		return fmt.Sprintf("✅ **%s** warranty is active. It expires on %s (%d days remaining).\n\n💡 **Proactive tip:** Common issues at this product age include: %s. Consider a checkup before warranty ends.",
			p.Name, p.ExpiryDate, daysLeft, strings.Join(top, ", "))
	}

	if len(products) == 0 {
		return "You have no products registered yet. Add a product to start tracking warranties!"
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("• **%s** – %s (%s)", p.Name, StatusLabel(p.DaysLeft(today)), DaysPhrase(p.DaysLeft(today), "left")))
	}
	return "Here's your warranty overview:\n\n" + strings.Join(lines, "\n")
}

// StatusLabel buckets signed days left into the dashboard traffic light.
func StatusLabel(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return "🔴 Expired"
	case daysLeft <= 30:
		return "🟡 Expiring Soon"
	}
	return "🟢 Active"
}

// DaysPhrase renders "N days <suffix>" for a positive count and
// "expired N days ago" otherwise.
func DaysPhrase(daysLeft int, suffix string) string {
	if daysLeft > 0 {
		return fmt.Sprintf("%d days %s", daysLeft, suffix)
	}
	return fmt.Sprintf("expired %d days ago", abs(daysLeft))
}

func (r *Responder) invoice(q string, products []*warranty.Product) string {
	p := matchName(q, products)
	if p == nil || p.InvoiceFileURL == "" {
		return "Please specify the product name, and make sure an invoice was uploaded when adding the product."
	}
	out := fmt.Sprintf("📄 Invoice for **%s**: [View Invoice](%s)", p.Name, p.InvoiceFileURL)
	if p.InvoiceNumber != "" {
		out += "\nInvoice #: " + p.InvoiceNumber
	}
	return out
}

func (r *Responder) service(q string) string {
	e, ok := r.dir.Mentioned(q)
	if !ok {
		return fmt.Sprintf("I can help with service center info for: %s. Which brand do you need?", strings.Join(r.dir.Brands(), ", "))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📞 **%s Service Center:**\n", e.Brand)
	if e.Phone != "" {
		fmt.Fprintf(&b, "• Phone: %s\n", e.Phone)
	}
	if e.Email != "" {
		fmt.Fprintf(&b, "• Email: %s\n", e.Email)
	}
	if e.Website != "" {
		fmt.Fprintf(&b, "• Website: %s\n", e.Website)
	}
	if len(e.Centers) > 0 {
		b.WriteString("\n📍 **Nearest Service Centers (Mumbai):**\n")
		for _, c := range e.Centers {
			fmt.Fprintf(&b, "• %s\n", c)
		}
	}
	return b.String()
}

func greeting(userName string) string {
	return fmt.Sprintf("Hello, %s! 👋 I'm your Warrify AI Advisor. I can help you with:\n"+
		"• 📋 **Warranty status** – Check any product's warranty\n"+
		"• 📄 **Invoice lookup** – Find your uploaded invoices\n"+
		"• 📞 **Service centers** – Get brand contact info & nearby locations\n"+
		"• 📧 **Complaint emails** – Draft professional warranty claim emails\n"+
		"• 🔮 **Risk assessment** – Predict product failure probability\n"+
		"• 💰 **Resale value** – Estimate product value with/without warranty\n\n"+
		"Just ask away!", userName)
}

const helpText = "I can help with warranty checks, invoice lookup, service center info, risk assessments, and drafting complaint emails. Try asking:\n" +
	"• \"What's the warranty status of my products?\"\n" +
	"• \"Show invoice for [product name]\"\n" +
	"• \"Samsung service center contact\"\n" +
	"• \"Draft complaint for [product name]\"\n" +
	"• \"Which products expire this month?\""

// FormatAmount prints a currency amount without trailing zeros: 129999, 499.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
