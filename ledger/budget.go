package ledger

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidWindow is returned when a budget evaluation is asked to project
// over a non-positive window.
var ErrInvalidWindow = errors.New("window days must be positive")

// Variance reports one category's projected spending against its budget.
type Variance struct {
	Category         string  `json:"category"`
	Budget           float64 `json:"budget"`
	ProjectedMonthly float64 `json:"projected_monthly"`
	PctOverBudget    int     `json:"pct_over_budget"`
	Flagged          bool    `json:"flagged"`
}

// EvaluateBudget projects each summarized category to a monthly rate and
// compares it to the matching budget. Categories without a budget entry are
// skipped. Budget keys match case-insensitively against ledger categories.
// A category is flagged only when its projection strictly exceeds 110% of
// its budget.
func EvaluateBudget(summary []CategorySummary, budgets map[string]float64, windowDays int) ([]Variance, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	lowered := make(map[string]float64, len(budgets))
	for k, v := range budgets {
		lowered[strings.ToLower(k)] = v
	}

	var out []Variance
	for _, s := range summary {
		budget, ok := lowered[strings.ToLower(s.Category)]
		if !ok {
			continue
		}
		projected := round2(s.TotalSpent * 30 / float64(windowDays))
		v := Variance{
			Category:         s.Category,
			Budget:           budget,
			ProjectedMonthly: projected,
		}
		if budget > 0 {
			v.PctOverBudget = int(math.Round((projected/budget - 1) * 100))
			v.Flagged = projected > budget*1.1
		} else {
			// A zero budget with any spending is over by definition.
			v.Flagged = projected > 0
		}
		out = append(out, v)
	}
	return out, nil
}
