// Package derive holds the pure derivation pipeline: every view the
// presentation layer shows is recomputed from the full record set on demand,
// never cached or pushed down to the store.
package derive

import (
	"sort"
	"strings"

	"stocktrack/internal/model"
)

// Severity buckets a product's stock health for visual styling.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityHealthy  Severity = "healthy"
)

// IsLowStock reports whether a product is at or below its threshold.
// The threshold itself counts as low.
func IsLowStock(p model.Product) bool {
	return p.Quantity <= p.LowStockThreshold
}

// LowStock returns the subset of products at or below their threshold,
// preserving input order.
func LowStock(products []model.Product) []model.Product {
	var low []model.Product
	for _, p := range products {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}

// CategoryTally counts products per category. Categories with no current
// records never appear in the tally, even if they are registered for
// filtering.
func CategoryTally(products []model.Product) map[string]int {
	tally := make(map[string]int)
	for _, p := range products {
		tally[p.Category]++
	}
	return tally
}

// Filter keeps products matching the free-text term and category. An empty
// term or category means "no constraint". The term matches case-insensitively
// against name or code; the category must match exactly. Input order is
// preserved.
func Filter(products []model.Product, term, category string) []model.Product {
	term = strings.ToLower(term)

	var result []model.Product
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Code), term) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		result = append(result, p)
	}
	return result
}

// StockSeverity returns the stock-health band for a product. A zero threshold
// means the product is never considered low, so it is always healthy.
func StockSeverity(p model.Product) Severity {
	if p.LowStockThreshold == 0 {
		return SeverityHealthy
	}
	if p.Quantity*2 <= p.LowStockThreshold {
		return SeverityCritical
	}
	if p.Quantity <= p.LowStockThreshold {
		return SeverityWarning
	}
	return SeverityHealthy
}

// BarFillPercent returns the stock bar fill width as a percentage of twice
// the threshold, capped at 100. Zero-threshold products show a full bar.
func BarFillPercent(p model.Product) float64 {
	if p.LowStockThreshold == 0 {
		return 100
	}
	pct := float64(p.Quantity) / float64(p.LowStockThreshold*2) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// RankCritical returns the n products with the lowest quantity-to-threshold
// ratio, most critical first. Products with a zero threshold are treated as
// "never low" and sort after every product with a positive threshold; ties
// keep input order. The input slice is not modified.
func RankCritical(products []model.Product, n int) []model.Product {
	ranked := make([]model.Product, len(products))
	copy(ranked, products)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		aNever := a.LowStockThreshold == 0
		bNever := b.LowStockThreshold == 0
		if aNever != bNever {
			return bNever
		}
		if aNever {
			return false
		}
		aRatio := float64(a.Quantity) / float64(a.LowStockThreshold)
		bRatio := float64(b.Quantity) / float64(b.LowStockThreshold)
		return aRatio < bRatio
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// TotalValue sums price times quantity across the set.
func TotalValue(products []model.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}
