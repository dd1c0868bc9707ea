// Package taxonomy maps a product category and name to the failure modes most
// often reported for that kind of product.
package taxonomy

import "strings"

// Rule pairs a lowercase name keyword with its failure list.
type Rule struct {
	Keyword  string
	Failures []string
}

// Table is the failure table of one category. Rules are scanned in order and
// the first keyword contained in the product name wins.
type Table struct {
	Category string
	Rules    []Rule
	Default  []string
}

// GlobalDefault applies to categories without a table.
var GlobalDefault = []string{"General wear and tear", "Component degradation"}

// fallback is returned when a table carries no default list.
var fallback = []string{"General component wear"}

var tables = []Table{
	{
		Category: "Electronics",
		Rules: []Rule{
			{"phone", []string{"Battery degradation", "Screen flickering", "Charging port issues", "Speaker malfunction"}},
			{"laptop", []string{"Battery swelling", "Keyboard key failure", "Screen backlight bleed", "Hinge wobble"}},
			{"headphones", []string{"Driver unit failure", "Bluetooth connectivity issues", "Cushion deterioration"}},
			{"tv", []string{"Panel dead pixels", "Backlight failure", "HDMI port issues", "Sound board failure"}},
		},
		Default: []string{"Battery issues", "Component wear", "Connectivity problems"},
	},
	{
		Category: "Appliances",
		Rules: []Rule{
			{"washing", []string{"Drum bearing failure", "Water inlet valve", "Door seal deterioration", "Motor capacitor"}},
			{"refrigerator", []string{"Compressor issues", "Thermostat failure", "Defrost heater", "Door seal wear"}},
			{"ac", []string{"Compressor failure", "Gas leakage", "PCB malfunction", "Fan motor issues"}},
			{"microwave", []string{"Magnetron failure", "Door switch issues", "Turntable motor"}},
		},
		Default: []string{"Motor wear", "Seal deterioration", "Control board issues"},
	},
	{
		Category: "Vehicle",
		Default:  []string{"Battery failure", "Electrical issues", "Suspension wear", "Brake pad wear"},
	},
	{
		Category: "Furniture",
		Default:  []string{"Joint loosening", "Surface delamination", "Mechanism failure"},
	},
}

// Lookup returns the table registered for category, if any.
func Lookup(category string) (Table, bool) {
	for _, t := range tables {
		if t.Category == category {
			return t, true
		}
	}
	return Table{}, false
}

// Failures resolves productName against the table.
func (t Table) Failures(productName string) []string {
	name := strings.ToLower(productName)
	for _, r := range t.Rules {
		if strings.Contains(name, r.Keyword) {
			return r.Failures
		}
	}
	if len(t.Default) > 0 {
		return t.Default
	}
	return fallback
}

// CommonFailures returns the ordered failure modes for a product. The result
// is a fresh slice that callers may modify.
func CommonFailures(category, productName string) []string {
	failures := GlobalDefault
	if t, ok := Lookup(category); ok {
		failures = t.Failures(productName)
	}
	return append([]string(nil), failures...)
}

// Top returns at most n leading failure modes.
func Top(failures []string, n int) []string {
	if len(failures) < n {
		return failures
	}
	return failures[:n]
}
