// Package risk scores how likely a product is to fail before its warranty
// runs out and what acting on that would be worth.
package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/taxonomy"
)

// Assessment is computed per request and never stored.
type Assessment struct {
	FailureProbability  int         `json:"failureProbability"`
	CommonIssues        []string    `json:"commonIssues"`
	EstimatedRepairCost int64       `json:"estimatedRepairCost"`
	Recommendation      string      `json:"recommendation"`
	ResaleValue         ResaleValue `json:"resaleValue"`
	DaysLeft            int         `json:"daysLeft"`
	UsedPercent         int         `json:"usedPercent"`
}

const (
	expiredProbability = 85
	categoryUplift     = 10
	maxProbability     = 95
	repairCostShare    = 0.3
	unknownPriceRepair = 5000.0
	daysPerResaleMonth = 30.0
)

// Input carries the product attributes the scorer reads.
type Input struct {
	PurchaseDate   warranty.Date
	ExpiryDate     warranty.Date
	Category       warranty.Category
	ProductName    string
	PurchasePrice  float64
	WarrantyMonths int
}

// InputFor extracts the scoring input from a stored product.
func InputFor(p *warranty.Product) Input {
	return Input{
		PurchaseDate:   p.PurchaseDate,
		ExpiryDate:     p.ExpiryDate,
		Category:       p.Category,
		ProductName:    p.Name,
		PurchasePrice:  p.PurchasePrice,
		WarrantyMonths: p.WarrantyMonths,
	}
}

// Scorer turns warranty timing into a failure signal. It is stateless apart
// from the clock and safe for concurrent use.
type Scorer struct {
	clock Clock
}

// NewScorer returns a Scorer reading dates from clock. A nil clock means the
// system clock.
func NewScorer(clock Clock) *Scorer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scorer{clock: clock}
}

// Today exposes the scorer's evaluation date.
func (s *Scorer) Today() warranty.Date { return s.clock.Today() }

// Assess scores in against the scorer's clock.
func (s *Scorer) Assess(in Input) Assessment {
	return AssessOn(s.clock.Today(), in)
}

// AssessOn scores in as of today.
func AssessOn(today warranty.Date, in Input) Assessment {
	daysLeft := today.DaysUntil(in.ExpiryDate)
	totalDays := in.PurchaseDate.DaysUntil(in.ExpiryDate)
	used := usedPercent(totalDays, daysLeft)

	failures := taxonomy.CommonFailures(string(in.Category), in.ProductName)
	probability := failureProbability(daysLeft, used, in.Category)

	base := unknownPriceRepair
	if in.PurchasePrice > 0 {
		base = in.PurchasePrice * repairCostShare
	}
	repair := round(base * (1 + float64(probability)/100))

	monthsLeft := math.Max(0, float64(daysLeft)/daysPerResaleMonth)

	return Assessment{
		FailureProbability:  probability,
		CommonIssues:        failures,
		EstimatedRepairCost: repair,
		Recommendation:      recommend(daysLeft, failures),
		ResaleValue:         EstimateResale(in.PurchasePrice, monthsLeft, in.WarrantyMonths),
		DaysLeft:            daysLeft,
		UsedPercent:         used,
	}
}

func usedPercent(totalDays, daysLeft int) int {
	if totalDays == 0 {
		return 100
	}
	pct := int(round(float64(totalDays-daysLeft) / float64(totalDays) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func failureProbability(daysLeft, used int, category warranty.Category) int {
	var p int
	switch {
	case daysLeft < 0:
		p = expiredProbability
	case used > 80:
		p = 65
	case used > 60:
		p = 40
	case used > 40:
		p = 25
	default:
		p = 10
	}
	if category == warranty.CategoryElectronics || category == warranty.CategoryAppliances {
		p += categoryUplift
		if p > maxProbability {
			p = maxProbability
		}
	}
	return p
}

func recommend(daysLeft int, failures []string) string {
	top := strings.Join(taxonomy.Top(failures, 2), ", ")
	switch {
	case daysLeft < 0:
		return "Warranty has expired. Consider extended warranty or replacement plans."
	case daysLeft <= 15:
		return fmt.Sprintf("URGENT: File a preventive claim NOW. Common issues at this age: %s. Warranty expires in %d days.", top, daysLeft)
	case daysLeft <= 30:
		return fmt.Sprintf("Schedule a thorough inspection before warranty expires. Watch for: %s.", top)
	case daysLeft <= 90:
		first := ""
		if len(failures) > 0 {
			first = failures[0]
		}
		return fmt.Sprintf("Monitor for early signs of %s. Consider filing any pending issues.", first)
	}
	return "Your product is in good shape. Continue regular use."
}
