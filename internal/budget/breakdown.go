package budget

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultCategoryColor = "#747D8C"
	uncategorizedName    = "Uncategorized"
)

var (
	hundred           = decimal.NewFromInt(100)
	approachingLimit  = decimal.NewFromInt(75)
	percentPrecision  = int32(2)
	stableChangeBound = 5.0
)

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func roundPercent(d decimal.Decimal) float64 {
	return d.Round(percentPrecision).InexactFloat64()
}

// SharePercent is part as a rounded percentage of whole.
func SharePercent(part, whole decimal.Decimal) float64 {
	return roundPercent(percentOf(part, whole))
}

// Totals splits transactions into income and expense sums.
func Totals(txs []Transaction) (income, expenses decimal.Decimal) {
	for _, t := range txs {
		if t.IsExpense {
			expenses = expenses.Add(t.Amount)
		} else {
			income = income.Add(t.Amount)
		}
	}
	return income, expenses
}

// limitsByCategory indexes limits by category. When a category has several
// limits the one starting latest wins.
func limitsByCategory(limits []BudgetLimit) map[uuid.UUID]BudgetLimit {
	out := make(map[uuid.UUID]BudgetLimit, len(limits))
	for _, l := range limits {
		if cur, ok := out[l.CategoryID]; ok && !l.StartDate.After(cur.StartDate) {
			continue
		}
		out[l.CategoryID] = l
	}
	return out
}

// CalculateCategoryBreakdown groups expense transactions by category and
// measures each group against the total and against its limit. The result is
// sorted by spent amount, largest first; ties keep encounter order.
func CalculateCategoryBreakdown(txs []Transaction, limits []BudgetLimit, totalExpenses decimal.Decimal) []CategoryBudget {
	byLimit := limitsByCategory(limits)
	index := make(map[uuid.UUID]int)
	out := make([]CategoryBudget, 0)

	for _, t := range txs {
		if !t.IsExpense {
			continue
		}
		key := categoryKey(t.CategoryID)
		i, ok := index[key]
		if !ok {
			cb := CategoryBudget{
				CategoryID:   t.CategoryID,
				CategoryName: uncategorizedName,
				Color:        defaultCategoryColor,
			}
			if t.CategoryName != nil && *t.CategoryName != "" {
				cb.CategoryName = *t.CategoryName
			}
			if t.CategoryColor != nil && *t.CategoryColor != "" {
				cb.Color = *t.CategoryColor
			}
			out = append(out, cb)
			i = len(out) - 1
			index[key] = i
		}
		out[i].SpentAmount = out[i].SpentAmount.Add(t.Amount)
	}

	for i := range out {
		cb := &out[i]
		cb.PercentageOfTotal = roundPercent(percentOf(cb.SpentAmount, totalExpenses))
		cb.Status = StatusNoLimit
		if cb.CategoryID == nil {
			continue
		}
		l, ok := byLimit[*cb.CategoryID]
		if !ok {
			continue
		}
		amount := l.LimitAmount
		cb.LimitAmount = &amount
		// status and warnings both grade the reported percentage
		ratio := limitRatio(cb.SpentAmount, amount).Round(percentPrecision)
		pct := ratio.InexactFloat64()
		cb.PercentageOfLimit = &pct
		cb.Status = classifyStatus(ratio)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].SpentAmount.GreaterThan(out[b].SpentAmount)
	})
	return out
}

// limitRatio is spent as a percentage of limit. A zero limit counts as fully
// used once anything is spent.
func limitRatio(spent, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		if spent.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return percentOf(spent, limit)
}

func classifyStatus(pct decimal.Decimal) LimitStatus {
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return StatusOverLimit
	case pct.GreaterThanOrEqual(approachingLimit):
		return StatusApproachingLimit
	default:
		return StatusUnderLimit
	}
}
