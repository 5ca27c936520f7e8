// Package listing filters the public service list by free text and a typed
// price range ("100-500", "300", "").
package listing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

var digitRun = regexp.MustCompile(`\d+`)

// PriceRange bounds a budget in reais, both ends inclusive.
type PriceRange struct {
	Min float64
	Max float64
}

// Unbounded is the range used when the text carries no digits.
var Unbounded = PriceRange{Min: 0, Max: math.Inf(1)}

// ParsePriceRange reads the digit runs of s. One run gives an open-ended lower
// bound; two or more use the first two in the order typed, so "500-100" yields
// Min=500, Max=100 and matches nothing.
func ParsePriceRange(s string) PriceRange {
	runs := digitRun.FindAllString(s, 2)
	switch len(runs) {
	case 0:
		return Unbounded
	case 1:
		return PriceRange{Min: parseRun(runs[0]), Max: math.Inf(1)}
	default:
		return PriceRange{Min: parseRun(runs[0]), Max: parseRun(runs[1])}
	}
}

func parseRun(s string) float64 {
	// digit-only input only fails on range; ParseFloat then reports ±Inf
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func (r PriceRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

func (r PriceRange) Inverted() bool {
	return r.Max < r.Min
}

func matchesText(rec *models.ServiceRequest, needle string) bool {
	if needle == "" {
		return true
	}
	hay := strings.ToLower(rec.Title + string(rec.Category) + rec.Description)
	return strings.Contains(hay, needle)
}

// Filter returns, in input order, the records whose title, category and
// description contain query (case-insensitive) and whose budget lies in the
// range typed in priceRange. The input slice is not modified.
func Filter(records []models.ServiceRequest, query, priceRange string) []models.ServiceRequest {
	needle := strings.ToLower(query)
	bounds := ParsePriceRange(priceRange)

	out := make([]models.ServiceRequest, 0, len(records))
	for i := range records {
		if !matchesText(&records[i], needle) {
			continue
		}
		if !bounds.Contains(records[i].Budget.Reais()) {
			continue
		}
		out = append(out, records[i])
	}
	return out
}
