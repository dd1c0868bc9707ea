package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/pkg/errors"
)

type assessOptions struct {
	name     string
	category string
	price    float64
	purchase string
	expiry   string
	months   int
	today    string
}

// assessResult adds the product to an Assessment for display.
type assessResult struct {
	Product  string `json:"product"`
	Category string `json:"category"`
	Expiry   string `json:"expiryDate"`
	risk.Assessment
}

func (r assessResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s), warranty expiry %s\n", r.Product, r.Category, r.Expiry)
	fmt.Fprintf(&b, "  Failure probability:   %d%%\n", r.FailureProbability)
	fmt.Fprintf(&b, "  Days left:             %d\n", r.DaysLeft)
	fmt.Fprintf(&b, "  Warranty used:         %d%%\n", r.UsedPercent)
	fmt.Fprintf(&b, "  Est. repair cost:      ₹%d\n", r.EstimatedRepairCost)
	fmt.Fprintf(&b, "  Resale with warranty:  ₹%d\n", r.ResaleValue.WithWarranty)
	fmt.Fprintf(&b, "  Resale without:        ₹%d\n", r.ResaleValue.WithoutWarranty)
	fmt.Fprintf(&b, "  Common issues:         %s\n", strings.Join(r.CommonIssues, ", "))
	fmt.Fprintf(&b, "  Recommendation:        %s", r.Recommendation)
	return b.String()
}

func (r assessResult) TableHeaders() []string {
	return []string{"PRODUCT", "EXPIRY", "DAYS LEFT", "USED %", "FAILURE %", "REPAIR", "RESALE W/", "RESALE W/O"}
}

func (r assessResult) TableRows() [][]string {
	return [][]string{{
		r.Product,
		r.Expiry,
		strconv.Itoa(r.DaysLeft),
		strconv.Itoa(r.UsedPercent),
		strconv.Itoa(r.FailureProbability),
		strconv.FormatInt(r.EstimatedRepairCost, 10),
		strconv.FormatInt(r.ResaleValue.WithWarranty, 10),
		strconv.FormatInt(r.ResaleValue.WithoutWarranty, 10),
	}}
}

// NewAssessCmd scores a product without touching any backend.
func NewAssessCmd() *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the claim risk of a product offline",
		Long: "Compute failure probability, repair cost and resale value for a product\n" +
			"described on the command line. Give either --expiry or --months.",
		Example: "  warrify assess --name \"Galaxy S23\" --category Electronics --price 74999 \\\n" +
			"    --purchase 2025-01-10 --months 12 --today 2025-12-20",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAssess(opts)
			if err != nil {
				return err
			}
			return PrintResult(cmd, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "product name (required)")
	f.StringVar(&opts.category, "category", string(warranty.CategoryElectronics),
		"category: "+joinCategories())
	f.Float64Var(&opts.price, "price", 0, "purchase price in rupees")
	f.StringVar(&opts.purchase, "purchase", "", "purchase date YYYY-MM-DD (required)")
	f.StringVar(&opts.expiry, "expiry", "", "warranty expiry date YYYY-MM-DD")
	f.IntVar(&opts.months, "months", 0, "warranty length in months")
	f.StringVar(&opts.today, "today", "", "evaluate as of this date instead of today")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("purchase")
	return cmd
}

func runAssess(opts *assessOptions) (*assessResult, error) {
	if strings.TrimSpace(opts.name) == "" {
		return nil, errors.InvalidParam("--name is required")
	}
	category := warranty.Category(opts.category)
	if !category.Valid() {
		return nil, errors.InvalidParam("unknown category " + strconv.Quote(opts.category) + "; use one of " + joinCategories())
	}
	if opts.price < 0 {
		return nil, errors.InvalidParam("--price must not be negative")
	}
	purchase, err := warranty.ParseDate(opts.purchase)
	if err != nil {
		return nil, errors.InvalidParam("--purchase must be YYYY-MM-DD")
	}

	var expiry warranty.Date
	switch {
	case opts.expiry != "":
		if expiry, err = warranty.ParseDate(opts.expiry); err != nil {
			return nil, errors.InvalidParam("--expiry must be YYYY-MM-DD")
		}
		if expiry.Before(purchase) {
			return nil, errors.InvalidParam("--expiry is before --purchase")
		}
	case opts.months > 0:
		expiry = warranty.ExpiryFor(purchase, opts.months)
	default:
		return nil, errors.InvalidParam("give --expiry or a positive --months")
	}

	months := opts.months
	if months <= 0 {
		months = monthsBetween(purchase, expiry)
	}

	today := risk.SystemClock{}.Today()
	if opts.today != "" {
		if today, err = warranty.ParseDate(opts.today); err != nil {
			return nil, errors.InvalidParam("--today must be YYYY-MM-DD")
		}
	}

	a := risk.AssessOn(today, risk.Input{
		PurchaseDate:   purchase,
		ExpiryDate:     expiry,
		Category:       category,
		ProductName:    opts.name,
		PurchasePrice:  opts.price,
		WarrantyMonths: months,
	})
	return &assessResult{
		Product:    opts.name,
		Category:   string(category),
		Expiry:     expiry.String(),
		Assessment: a,
	}, nil
}

// monthsBetween counts whole calendar months from a to b. An expiry on the
// last day of a shorter month counts as whole, matching AddMonths clamping.
func monthsBetween(a, b warranty.Date) int {
	n := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if b.Day() < a.Day() && !a.AddMonths(n).Equal(b) {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

func joinCategories() string {
	names := make([]string, len(warranty.Categories))
	for i, c := range warranty.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
