package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finance-tracker-backend/internal/budget"
)

// Rule-of-thumb monthly spending ceilings per category name. These are not
// user limits; see budget.LimitBasedWarnings for those.
var monthlyThresholds = map[string]int64{
	"food & dining":  500,
	"groceries":      600,
	"entertainment":  200,
	"shopping":       400,
	"transportation": 300,
	"utilities":      350,
}

const (
	defaultMonthlyThreshold = 1000
	approachingShare        = 80
)

// thresholdFor scales the monthly ceiling to the analysed period.
func thresholdFor(category string, period budget.Period) decimal.Decimal {
	monthly, ok := monthlyThresholds[strings.ToLower(category)]
	if !ok {
		monthly = defaultMonthlyThreshold
	}
	t := decimal.NewFromInt(monthly)
	switch period {
	case budget.PeriodWeek:
		return t.Div(decimal.NewFromInt(4))
	case budget.PeriodYear:
		return t.Mul(decimal.NewFromInt(12))
	}
	return t
}

// GetSpendingAnalytics returns the spending breakdown, income versus
// expenses, expense trends and threshold warnings for the current period.
func (s *Service) GetSpendingAnalytics(ctx context.Context, userID uuid.UUID, period budget.Period) (*SpendingAnalytics, error) {
	current := budget.PeriodDates(period, 0, s.now())
	windows := budget.TrendWindows(period, current, s.trendPeriods)
	periods := make([][]budget.Transaction, len(windows))

	// the last window is the current period
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			txs, err := s.repo.Transactions(gctx, userID, w)
			if err != nil {
				return fmt.Errorf("Failed to fetch transactions: %w", err)
			}
			periods[i] = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	txs := periods[len(periods)-1]
	income, expenses := budget.Totals(txs)
	breakdown := SpendingBreakdown(txs)

	return &SpendingAnalytics{
		Period:           string(period),
		StartDate:        current.Start,
		EndDate:          current.End,
		MonthlyBreakdown: breakdown,
		IncomeVsExpense: IncomeVsExpense{
			Income:       income,
			Expenses:     expenses,
			Net:          income.Sub(expenses),
			ExpenseRatio: budget.SharePercent(expenses, income),
		},
		Trends:         SpendingTrends(period, windows, periods),
		BudgetWarnings: HeuristicThresholdWarnings(breakdown, period),
	}, nil
}

// SpendingBreakdown reduces the category aggregator's output to the share of
// total spending per category.
func SpendingBreakdown(txs []budget.Transaction) []CategorySpending {
	_, expenses := budget.Totals(txs)
	cats := budget.CalculateCategoryBreakdown(txs, nil, expenses)
	out := make([]CategorySpending, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategorySpending{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Color:        c.Color,
			Amount:       c.SpentAmount,
			Percentage:   c.PercentageOfTotal,
		})
	}
	return out
}

// SpendingTrends reports expense totals per window (oldest first) with the
// change from the previous window. The oldest window reports zero change.
func SpendingTrends(period budget.Period, windows []budget.DateRange, periods [][]budget.Transaction) []SpendingTrend {
	out := make([]SpendingTrend, 0, len(windows))
	for i, w := range windows {
		_, expenses := budget.Totals(periods[i])
		st := SpendingTrend{
			Period:    trendLabel(period, w),
			StartDate: w.Start,
			EndDate:   w.End,
			Expenses:  expenses,
		}
		if i > 0 {
			st.ChangePercentage = budget.PercentChange(expenses, out[i-1].Expenses)
		}
		out = append(out, st)
	}
	return out
}

func trendLabel(period budget.Period, w budget.DateRange) string {
	switch period {
	case budget.PeriodWeek:
		return w.Start.Format("Jan 02")
	case budget.PeriodYear:
		return w.Start.Format("2006")
	}
	return w.Start.Format("Jan 2006")
}

// HeuristicThresholdWarnings compares each category's spending with a fixed
// dollar ceiling. It reports categories at 80% or more of the ceiling,
// exceeded ones first.
func HeuristicThresholdWarnings(breakdown []CategorySpending, period budget.Period) []ThresholdWarning {
	out := make([]ThresholdWarning, 0)
	for _, c := range breakdown {
		threshold := thresholdFor(c.CategoryName, period)
		used := budget.SharePercent(c.Amount, threshold)

		w := ThresholdWarning{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			SpentAmount:  c.Amount,
			Threshold:    threshold,
		}
		switch {
		case used >= 100:
			w.Level = ThresholdExceeded
			w.Message = fmt.Sprintf("%s spending of $%s is over the suggested $%s",
				c.CategoryName, c.Amount.StringFixed(2), threshold.StringFixed(2))
		case used >= approachingShare:
			w.Level = ThresholdApproaching
			w.Message = fmt.Sprintf("%s spending is at %.0f%% of the suggested $%s",
				c.CategoryName, used, threshold.StringFixed(2))
		default:
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Level == ThresholdExceeded && out[b].Level != ThresholdExceeded
	})
	return out
}
