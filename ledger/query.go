package ledger

import (
	"sort"
	"time"
)

// FilterByWindow returns the transactions dated within the last windowDays
// relative to now. A non-positive window yields an empty slice.
func FilterByWindow(txns []Transaction, windowDays int, now time.Time) []Transaction {
	if windowDays <= 0 {
		return []Transaction{}
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Date.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCategory returns the transactions matching the given category.
// Matching is exact. A nil filter means no filtering.
func FilterByCategory(txns []Transaction, category *string) []Transaction {
	if category == nil {
		return txns
	}
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Category == *category {
			out = append(out, t)
		}
	}
	return out
}

// Summarize aggregates expense rows by category. Every row with a negative
// amount counts toward spending at its absolute value; credits are ignored.
// Results are sorted by total spent descending, with equal totals broken by
// category name ascending so the ordering is stable.
func Summarize(txns []Transaction) []CategorySummary {
	totals := make(map[string]*CategorySummary)
	for _, t := range txns {
		if t.Amount >= 0 {
			continue
		}
		s, ok := totals[t.Category]
		if !ok {
			s = &CategorySummary{Category: t.Category}
			totals[t.Category] = s
		}
		s.TotalSpent += -t.Amount
		s.Count++
	}

	out := make([]CategorySummary, 0, len(totals))
	for _, s := range totals {
		s.TotalSpent = round2(s.TotalSpent)
		s.AvgTransaction = round2(s.TotalSpent / float64(s.Count))
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TotalSpent sums the summary totals.
func TotalSpent(summary []CategorySummary) float64 {
	var total float64
	for _, s := range summary {
		total += s.TotalSpent
	}
	return round2(total)
}
