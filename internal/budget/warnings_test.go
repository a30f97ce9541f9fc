package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdownWithLimit(c Category, spent, limitAmount string) []CategoryBudget {
	june := PeriodDates(PeriodMonth, 0, day(2024, time.June, 15))
	txs := []Transaction{spend(&c, spent, day(2024, time.June, 3))}
	return CalculateCategoryBreakdown(txs, []BudgetLimit{limit(c, limitAmount, LimitMonthly, june)}, decimal.RequireFromString(spent))
}

func TestLimitBasedWarnings_High(t *testing.T) {
	got := LimitBasedWarnings(breakdownWithLimit(food, "180", "200"))
	require.Len(t, got, 1)
	assert.Equal(t, WarningHigh, got[0].WarningLevel)
	assert.Contains(t, got[0].Message, "approaching your budget limit")
	assert.Equal(t, "You're approaching your budget limit for Food (90.0% used)", got[0].Message)
	assert.Equal(t, "200", got[0].LimitAmount.String())
	assert.Equal(t, "180", got[0].SpentAmount.String())
}

func TestLimitBasedWarnings_Levels(t *testing.T) {
	tests := []struct {
		name    string
		spent   string
		level   WarningLevel
		message string
	}{
		{"critical", "110", WarningCritical, "You've exceeded your budget limit for Food by 10.0%"},
		{"exactly at limit", "100", WarningCritical, "You've exceeded your budget limit for Food by 0.0%"},
		{"high", "95", WarningHigh, "You're approaching your budget limit for Food (95.0% used)"},
		{"medium", "80", WarningMedium, "You've used 80.0% of your Food budget"},
		{"medium boundary", "75", WarningMedium, "You've used 75.0% of your Food budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LimitBasedWarnings(breakdownWithLimit(food, tt.spent, "100"))
			require.Len(t, got, 1)
			assert.Equal(t, tt.level, got[0].WarningLevel)
			assert.Equal(t, tt.message, got[0].Message)
		})
	}
}

// A category's status and its warning grade the same reported percentage.
func TestLimitBasedWarnings_MatchStatusAtRoundingEdges(t *testing.T) {
	tests := []struct {
		spent   string
		status  LimitStatus
		pct     float64
		level   WarningLevel
		message string
	}{
		{"74.994", StatusUnderLimit, 74.99, "", ""},
		{"74.996", StatusApproachingLimit, 75, WarningMedium, "You've used 75.0% of your Food budget"},
		{"99.996", StatusOverLimit, 100, WarningCritical, "You've exceeded your budget limit for Food by 0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			breakdown := breakdownWithLimit(food, tt.spent, "100")
			require.Len(t, breakdown, 1)
			assert.Equal(t, tt.status, breakdown[0].Status)
			require.NotNil(t, breakdown[0].PercentageOfLimit)
			assert.Equal(t, tt.pct, *breakdown[0].PercentageOfLimit)

			got := LimitBasedWarnings(breakdown)
			if tt.level == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.level, got[0].WarningLevel)
			assert.Equal(t, tt.message, got[0].Message)
		})
	}
}

func TestLimitBasedWarnings_SkipsLowAndUnlimited(t *testing.T) {
	assert.Empty(t, LimitBasedWarnings(breakdownWithLimit(food, "50", "100")))

	txs := []Transaction{spend(&travel, "5000", day(2024, time.June, 3))}
	assert.Empty(t, LimitBasedWarnings(CalculateCategoryBreakdown(txs, nil, decimal.NewFromInt(5000))))
}

func TestLimitBasedWarnings_OrderedBySeverity(t *testing.T) {
	june := PeriodDates(PeriodMonth, 0, day(2024, time.June, 15))
	txs := []Transaction{
		spend(&food, "80", day(2024, time.June, 3)),
		spend(&travel, "95", day(2024, time.June, 3)),
		spend(&fun, "150", day(2024, time.June, 3)),
	}
	limits := []BudgetLimit{
		limit(food, "100", LimitMonthly, june),
		limit(travel, "100", LimitMonthly, june),
		limit(fun, "100", LimitMonthly, june),
	}
	// reverse so input order disagrees with severity order
	breakdown := CalculateCategoryBreakdown(txs, limits, decimal.NewFromInt(325))
	for i, j := 0, len(breakdown)-1; i < j; i, j = i+1, j-1 {
		breakdown[i], breakdown[j] = breakdown[j], breakdown[i]
	}

	got := LimitBasedWarnings(breakdown)
	require.Len(t, got, 3)
	assert.Equal(t, WarningCritical, got[0].WarningLevel)
	assert.Equal(t, WarningHigh, got[1].WarningLevel)
	assert.Equal(t, WarningMedium, got[2].WarningLevel)
	for _, w := range got {
		assert.NotEqual(t, WarningLow, w.WarningLevel)
	}
}
