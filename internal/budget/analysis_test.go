package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepository() *fakeRepository {
	repo := newFakeRepository()
	repo.categories = []Category{food, travel, fun, salary}
	repo.transactions = []Transaction{
		earn(&salary, "3000", day(2024, time.June, 1)),
		spend(&food, "500", day(2024, time.June, 3)),
		spend(&travel, "300", day(2024, time.June, 4)),
		spend(&food, "200", day(2024, time.May, 20)),
	}
	june := PeriodDates(PeriodMonth, 0, day(2024, time.June, 15))
	for _, l := range []BudgetLimit{
		limit(food, "600", LimitMonthly, june),
		limit(travel, "10", LimitWeekly, PeriodDates(PeriodWeek, 0, day(2024, time.June, 4))),
	} {
		repo.limits[l.ID] = l
	}
	return repo
}

func TestGetBudgetAnalysis(t *testing.T) {
	repo := seededRepository()
	svc := NewService(repo, WithClock(fixedClock(day(2024, time.June, 15))))

	got, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodMonth, 0)
	require.NoError(t, err)

	assert.Equal(t, "month-2024", got.Period)
	assert.Equal(t, "3000", got.TotalIncome.String())
	assert.Equal(t, "800", got.TotalExpenses.String())
	assert.Equal(t, "2200", got.NetAmount.String())

	require.Len(t, got.CategoryBreakdown, 2)
	assert.Equal(t, StatusApproachingLimit, got.CategoryBreakdown[0].Status)
	// weekly limits do not apply to a monthly analysis
	assert.Equal(t, StatusNoLimit, got.CategoryBreakdown[1].Status)

	require.Len(t, got.Trends, DefaultTrendPeriods)
	assert.Equal(t, "2024-06", got.Trends[len(got.Trends)-1].Period)
	assert.Equal(t, 0.0, got.Trends[0].ChangePercentage)

	require.Len(t, got.Warnings, 1)
	assert.Equal(t, WarningMedium, got.Warnings[0].WarningLevel)
	assert.Equal(t, "You've used 83.3% of your Food budget", got.Warnings[0].Message)

	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, RecommendLimitAdjustment, got.Recommendations[0].Type)
	assert.Equal(t, "Transport", got.Recommendations[0].CategoryName)
	assert.Equal(t, RecommendSpendingReduction, got.Recommendations[1].Type)
	assert.Equal(t, "Food", got.Recommendations[1].CategoryName)
}

func TestGetBudgetAnalysis_ExplicitYear(t *testing.T) {
	svc := NewService(seededRepository(), WithClock(fixedClock(day(2024, time.June, 15))))

	got, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodYear, 2023)
	require.NoError(t, err)
	assert.Equal(t, "year-2023", got.Period)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.True(t, got.TotalExpenses.IsZero())
	assert.Empty(t, got.CategoryBreakdown)
	assert.Equal(t, "2023", got.Trends[len(got.Trends)-1].Period)
}

func TestGetBudgetAnalysis_LabelMatchesRange(t *testing.T) {
	svc := NewService(seededRepository(), WithClock(fixedClock(day(2024, time.June, 15))))

	month, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodMonth, 2023)
	require.NoError(t, err)
	assert.Equal(t, "month-2023", month.Period)
	assert.Equal(t, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), month.StartDate)
	assert.True(t, month.TotalExpenses.IsZero())

	week, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodWeek, 2023)
	require.NoError(t, err)
	assert.Equal(t, "week-2024", week.Period)
	assert.Equal(t, time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), week.StartDate)
}

func TestGetBudgetAnalysis_Idempotent(t *testing.T) {
	svc := NewService(seededRepository(), WithClock(fixedClock(day(2024, time.June, 15))))

	first, err := svc.GetCategoryBreakdown(context.Background(), testUser, PeriodMonth)
	require.NoError(t, err)
	second, err := svc.GetCategoryBreakdown(context.Background(), testUser, PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetBudgetAnalysis_FailsWhole(t *testing.T) {
	t.Run("transactions", func(t *testing.T) {
		repo := seededRepository()
		repo.transactionsErr = errors.New("timeout")
		svc := NewService(repo)

		got, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodMonth, 0)
		assert.Nil(t, got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to fetch transactions: timeout")
	})

	t.Run("limits", func(t *testing.T) {
		repo := seededRepository()
		repo.limitsErr = errors.New("permission denied")
		svc := NewService(repo)

		got, err := svc.GetBudgetAnalysis(context.Background(), testUser, PeriodMonth, 0)
		assert.Nil(t, got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to fetch budget limits: permission denied")
	})
}

func TestGetBudgetAnalysis_Cached(t *testing.T) {
	repo := seededRepository()
	cache := newFakeCache()
	svc := NewService(repo,
		WithClock(fixedClock(day(2024, time.June, 15))),
		WithCache(cache, time.Minute),
		WithTrendPeriods(3),
	)
	ctx := context.Background()

	first, err := svc.GetBudgetAnalysis(ctx, testUser, PeriodMonth, 0)
	require.NoError(t, err)
	calls := repo.calls()
	assert.Equal(t, 4, calls)
	assert.Equal(t, 1, cache.len())

	second, err := svc.GetBudgetAnalysis(ctx, testUser, PeriodMonth, 0)
	require.NoError(t, err)
	assert.Equal(t, calls, repo.calls())
	assert.Equal(t, first.Period, second.Period)
	assert.True(t, first.TotalExpenses.Equal(second.TotalExpenses))
	assert.Len(t, second.CategoryBreakdown, len(first.CategoryBreakdown))
	assert.Len(t, second.Trends, 3)

	amount := decimal.NewFromInt(100)
	_, err = svc.CreateBudgetLimit(ctx, testUser, CreateLimitInput{
		CategoryID:  fun.ID.String(),
		LimitAmount: &amount,
		Period:      "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.len())
}

func TestGetBudgetWarnings(t *testing.T) {
	repo := seededRepository()
	repo.transactions = append(repo.transactions, spend(&food, "50", day(2024, time.June, 10)))
	svc := NewService(repo, WithClock(fixedClock(day(2024, time.June, 15))))

	got, err := svc.GetBudgetWarnings(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, WarningHigh, got[0].WarningLevel)
	assert.Contains(t, got[0].Message, "approaching your budget limit")
}
