// Package insights derives short advisory messages from a user's product
// list.
package insights

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/risk"
)

const (
	expiringWindowDays = 30
	recentlyMissedDays = 60
	electronicsTipMin  = 3
)

// Report is the insight list plus the counters shown next to it.
type Report struct {
	Insights      []string `json:"insights"`
	TotalProducts int      `json:"totalProducts"`
	ActiveCount   int      `json:"activeCount"`
}

type Service interface {
	Generate(ctx context.Context, userID int64) (*Report, error)
}

type serviceImpl struct {
	products warranty.ProductRepository
	clock    risk.Clock
}

func NewService(products warranty.ProductRepository, clock risk.Clock) Service {
	if clock == nil {
		clock = risk.SystemClock{}
	}
	return &serviceImpl{products: products, clock: clock}
}

func (s *serviceImpl) Generate(ctx context.Context, userID int64) (*Report, error) {
	products, err := s.products.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Build(products, s.clock.Today()), nil
}

// Build evaluates the insight rules in order against products as of today.
func Build(products []*warranty.Product, today warranty.Date) *Report {
	var (
		soonNames      []string
		expiredCount   int
		expiredValue   float64
		recentlyMissed bool
		electronics    int
		activeCount    int
		activeValue    float64
	)
	for _, p := range products {
		dl := p.DaysLeft(today)
		switch {
		case dl > 0:
			activeCount++
			activeValue += p.PurchasePrice
			if dl <= expiringWindowDays {
				soonNames = append(soonNames, p.Name)
			}
		case dl < 0:
			expiredCount++
			expiredValue += p.PurchasePrice
			if -dl <= recentlyMissedDays {
				recentlyMissed = true
			}
		}
		if p.Category == warranty.CategoryElectronics {
			electronics++
		}
	}

	var out []string
	if len(soonNames) > 0 {
		out = append(out, fmt.Sprintf("⚠️ %d product(s) expiring within 30 days. File preventive claims for: %s.",
			len(soonNames), strings.Join(soonNames, ", ")))
	}
	if expiredCount > 0 && expiredValue > 0 {
		out = append(out, fmt.Sprintf("💸 You may have missed ₹%s in potential warranty claims from %d expired product(s).",
			FormatINR(expiredValue), expiredCount))
	}
	if electronics >= electronicsTipMin {
		out = append(out, fmt.Sprintf("📱 You track %d electronics. Tip: Check for software-related issues before hardware warranty expires — they're often covered too.", electronics))
	}
	if recentlyMissed {
		out = append(out, "🔔 Based on your history, consider setting 30-day buffer reminders to avoid missing claim windows.")
	}
	if activeValue > 0 {
		out = append(out, fmt.Sprintf("🛡️ Your active warranties protect ₹%s in assets. Keep tracking to maximize coverage.", FormatINR(activeValue)))
	}
	if len(out) == 0 {
		out = append(out, "✅ All warranties are in good standing. You're doing great at tracking your products!")
	}

	return &Report{Insights: out, TotalProducts: len(products), ActiveCount: activeCount}
}

// FormatINR groups digits the Indian way (1,29,999) and keeps up to three
// fraction digits without trailing zeros.
func FormatINR(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if n := len(intPart); n > 3 {
		head, tail := intPart[:n-3], intPart[n-3:]
		if len(head)%2 == 1 {
			b.WriteString(head[:1])
			b.WriteByte(',')
			head = head[1:]
		}
		for i := 0; i < len(head); i += 2 {
			b.WriteString(head[i : i+2])
			b.WriteByte(',')
		}
		b.WriteString(tail)
	} else {
		b.WriteString(intPart)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
