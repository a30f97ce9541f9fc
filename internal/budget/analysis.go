package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// GetBudgetAnalysis assembles the full budget report for one period. Any
// failing sub-fetch fails the whole report.
func (s *Service) GetBudgetAnalysis(ctx context.Context, userID uuid.UUID, period Period, year int) (*BudgetAnalysis, error) {
	now := s.now()
	r := PeriodDates(period, year, now)
	label := fmt.Sprintf("%s-%d", period, r.Start.Year())

	return cached(ctx, s, cacheKey(userID, "analysis", period, r, s.trendPeriods), func() (*BudgetAnalysis, error) {
		var (
			txs    []Transaction
			limits []BudgetLimit
			trends []BudgetTrend
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			txs, err = s.fetchTransactions(gctx, userID, r)
			return err
		})
		g.Go(func() error {
			var err error
			limits, err = s.activeLimits(gctx, userID, period, r)
			return err
		})
		g.Go(func() error {
			var err error
			trends, err = s.loadTrends(gctx, userID, period, r, s.trendPeriods)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		income, expenses := Totals(txs)
		breakdown := CalculateCategoryBreakdown(txs, limits, expenses)

		return &BudgetAnalysis{
			Period:            label,
			StartDate:         r.Start,
			EndDate:           r.End,
			TotalIncome:       income,
			TotalExpenses:     expenses,
			NetAmount:         income.Sub(expenses),
			CategoryBreakdown: breakdown,
			Trends:            trends,
			Warnings:          LimitBasedWarnings(breakdown),
			Recommendations:   GenerateRecommendations(breakdown, trends, income, expenses),
		}, nil
	})
}

// GetCategoryBreakdown returns the current period's per-category spending.
func (s *Service) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, period Period) ([]CategoryBudget, error) {
	r := PeriodDates(period, 0, s.now())
	return cached(ctx, s, cacheKey(userID, "categories", period, r), func() ([]CategoryBudget, error) {
		return s.breakdown(ctx, userID, period, r)
	})
}

// GetBudgetWarnings returns limit-based warnings for the current month.
func (s *Service) GetBudgetWarnings(ctx context.Context, userID uuid.UUID) ([]BudgetWarning, error) {
	breakdown, err := s.GetCategoryBreakdown(ctx, userID, PeriodMonth)
	if err != nil {
		return nil, err
	}
	return LimitBasedWarnings(breakdown), nil
}

// GetBudgetTrends returns periods consecutive windows ending with the current
// one, oldest first. Zero periods means the default.
func (s *Service) GetBudgetTrends(ctx context.Context, userID uuid.UUID, period Period, periods int) ([]BudgetTrend, error) {
	if periods == 0 {
		periods = DefaultTrendPeriods
	}
	if periods < 1 || periods > MaxTrendPeriods {
		return nil, invalid("Invalid months", fmt.Sprintf("months must be between 1 and %d", MaxTrendPeriods))
	}
	r := PeriodDates(period, 0, s.now())
	return cached(ctx, s, cacheKey(userID, "trends", period, r, periods), func() ([]BudgetTrend, error) {
		return s.loadTrends(ctx, userID, period, r, periods)
	})
}

func (s *Service) breakdown(ctx context.Context, userID uuid.UUID, period Period, r DateRange) ([]CategoryBudget, error) {
	txs, err := s.fetchTransactions(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	limits, err := s.activeLimits(ctx, userID, period, r)
	if err != nil {
		return nil, err
	}
	_, expenses := Totals(txs)
	return CalculateCategoryBreakdown(txs, limits, expenses), nil
}

// loadTrends fetches every window concurrently, then reduces them in
// chronological order.
func (s *Service) loadTrends(ctx context.Context, userID uuid.UUID, period Period, current DateRange, n int) ([]BudgetTrend, error) {
	windows := TrendWindows(period, current, n)
	periods := make([]PeriodTransactions, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			txs, err := s.fetchTransactions(gctx, userID, w)
			if err != nil {
				return err
			}
			periods[i] = PeriodTransactions{Range: w, Transactions: txs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return CalculateTrends(period, periods), nil
}

func (s *Service) fetchTransactions(ctx context.Context, userID uuid.UUID, r DateRange) ([]Transaction, error) {
	txs, err := s.repo.Transactions(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch transactions: %w", err)
	}
	return txs, nil
}

// activeLimits returns the limits of the period's recurrence that overlap r.
func (s *Service) activeLimits(ctx context.Context, userID uuid.UUID, period Period, r DateRange) ([]BudgetLimit, error) {
	limits, err := s.repo.BudgetLimits(ctx, userID, period.LimitPeriod())
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch budget limits: %w", err)
	}
	active := limits[:0:0]
	for _, l := range limits {
		if r.Overlaps(DateRange{Start: l.StartDate, End: l.EndDate}) {
			active = append(active, l)
		}
	}
	return active, nil
}
