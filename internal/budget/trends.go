package budget

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodTransactions holds the transactions that fell into one window.
type PeriodTransactions struct {
	Range        DateRange
	Transactions []Transaction
}

// TrendWindows lists the n consecutive windows ending with the one containing
// ref, oldest first.
func TrendWindows(p Period, ref DateRange, n int) []DateRange {
	out := make([]DateRange, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = PeriodDatesOffset(p, ref.Start, i)
	}
	return out
}

// CalculateTrends folds per-window transactions (oldest first) into a
// chronological trend series. Each entry is compared with the one before it;
// the oldest entry has no predecessor and reports zero change.
func CalculateTrends(p Period, periods []PeriodTransactions) []BudgetTrend {
	out := make([]BudgetTrend, 0, len(periods))
	var prevBreakdown []CategoryBudget

	for i, pt := range periods {
		income, expenses := Totals(pt.Transactions)
		net := income.Sub(expenses)
		breakdown := CalculateCategoryBreakdown(pt.Transactions, nil, expenses)

		trend := BudgetTrend{
			Period:          periodLabel(p, pt.Range),
			StartDate:       pt.Range.Start,
			EndDate:         pt.Range.End,
			Income:          income,
			Expenses:        expenses,
			NetAmount:       net,
			CategoryChanges: categoryChanges(breakdown, prevBreakdown),
		}
		if i > 0 {
			trend.ChangePercentage = PercentChange(net, out[i-1].NetAmount)
		}
		out = append(out, trend)
		prevBreakdown = breakdown
	}
	return out
}

// PercentChange is the relative move from prev to cur measured against
// |prev|, rounded to two decimals. It is zero when prev is zero.
func PercentChange(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		return 0
	}
	return roundPercent(cur.Sub(prev).Div(prev.Abs()).Mul(hundred))
}

func categoryChanges(cur, prev []CategoryBudget) []CategoryTrend {
	previous := make(map[uuid.UUID]decimal.Decimal, len(prev))
	for _, cb := range prev {
		previous[categoryKey(cb.CategoryID)] = cb.SpentAmount
	}

	out := make([]CategoryTrend, 0, len(cur))
	for _, cb := range cur {
		before := previous[categoryKey(cb.CategoryID)]
		change := PercentChange(cb.SpentAmount, before)
		out = append(out, CategoryTrend{
			CategoryID:       cb.CategoryID,
			CategoryName:     cb.CategoryName,
			CurrentAmount:    cb.SpentAmount,
			PreviousAmount:   before,
			ChangePercentage: change,
			TrendDirection:   direction(change),
		})
	}
	return out
}

func direction(change float64) TrendDirection {
	switch {
	case math.Abs(change) <= stableChangeBound:
		return TrendStable
	case change > 0:
		return TrendIncreasing
	default:
		return TrendDecreasing
	}
}

func categoryKey(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
