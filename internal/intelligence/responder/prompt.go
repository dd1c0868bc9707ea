package responder

import (
	"fmt"
	"strings"

	"github.com/turtacn/warrify/internal/domain/warranty"
)

// PromptUser identifies who the generative assistant is talking to.
type PromptUser struct {
	Name  string
	Email string
}

// ContextLine summarises one product for the generative assistant.
func ContextLine(p *warranty.Product, today warranty.Date) string {
	dl := p.DaysLeft(today)
	state := fmt.Sprintf("EXPIRED %d days ago", abs(dl))
	if dl > 0 {
		state = fmt.Sprintf("%d days left", dl)
	}
	line := fmt.Sprintf("- %s (%s, %s): purchased %s, warranty %d months, expires %s (%s)",
		p.Name, orDefault(p.Brand, "No brand"), p.Category, p.PurchaseDate, p.WarrantyMonths, p.ExpiryDate, state)
	if p.InvoiceNumber != "" {
		line += ", Invoice#: " + p.InvoiceNumber
	}
	if p.PurchasePrice != 0 {
		line += ", Price: ₹" + FormatAmount(p.PurchasePrice)
	}
	return line
}

// SystemPrompt builds the advisor instructions sent ahead of the user's message.
func SystemPrompt(user PromptUser, products []*warranty.Product, brands []string, today warranty.Date) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, ContextLine(p, today))
	}
	productContext := strings.Join(lines, "\n")
	if productContext == "" {
		productContext = "No products registered yet."
	}

	return fmt.Sprintf(`You are Warrify AI Advisor – a proactive, intelligent warranty management advisor. You don't just answer questions — you anticipate problems and suggest actions.

Current user: %s (%s)
Today's date: %s

User's registered products:
%s

Available service center brands: %s

Instructions:
- Be concise, actionable and helpful. Use bullet points and formatting.
- When asked about warranty status, provide detailed analysis with days remaining.
- When asked about service centers, provide the contact info AND nearby service center locations.
- When asked to draft a complaint/claim email, write a HIGHLY PROFESSIONAL and SPECIFIC email. Include:
  * Clear subject line with product name and invoice number
  * Formal greeting to brand support team
  * Specific issue description (ask user for details if not provided)
  * Product details: purchase date, warranty expiry, invoice number
  * Request for repair/replacement under warranty
  * Professional closing with user's name
  * NEVER include placeholder text like "[Please describe issue here]" - if no issue is specified, write about a general inspection request
- Proactively suggest actions: "Your X warranty expires in Y days. Consider filing a claim for [common issues]."
- If the user asks in Hindi or Marathi, respond in that language.
- Suggest claim filing strategies and timing based on warranty expiry proximity.
- Never make up product information not in the list above.
- For products expiring soon, mention common failure patterns for that category.`,
		user.Name, user.Email, today, productContext, strings.Join(brands, ", "))
}

// Message joins the system prompt and the user's message into one turn.
func Message(systemPrompt, userMessage string) string {
	return systemPrompt + "\n\nUser message: " + userMessage
}
