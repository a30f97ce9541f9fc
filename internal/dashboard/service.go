package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finance-tracker-backend/internal/budget"
)

const (
	defaultRecentTransactions = 10
	defaultTrendPeriods       = 6
)

// Repository is the read-only data the dashboard needs.
type Repository interface {
	Accounts(ctx context.Context, userID uuid.UUID) ([]Account, error)
	RecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]budget.Transaction, error)
	Goals(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Transactions(ctx context.Context, userID uuid.UUID, r budget.DateRange) ([]budget.Transaction, error)
}

// Service assembles the dashboard. It holds no per-user state.
type Service struct {
	repo         Repository
	recentLimit  int
	trendPeriods int
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithRecentTransactions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

func WithTrendPeriods(n int) Option {
	return func(s *Service) {
		if n > 0 && n <= budget.MaxTrendPeriods {
			s.trendPeriods = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		recentLimit:  defaultRecentTransactions,
		trendPeriods: defaultTrendPeriods,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetDashboard loads accounts, recent transactions, goals and this month's
// analytics concurrently. The first failure cancels the rest.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := s.repo.Accounts(gctx, userID)
		if err != nil {
			return fmt.Errorf("Failed to fetch accounts: %w", err)
		}
		d.Accounts = SummarizeAccounts(accounts)
		return nil
	})
	g.Go(func() error {
		txs, err := s.repo.RecentTransactions(gctx, userID, s.recentLimit)
		if err != nil {
			return fmt.Errorf("Failed to fetch transactions: %w", err)
		}
		if txs == nil {
			txs = make([]budget.Transaction, 0)
		}
		d.RecentTransactions = txs
		return nil
	})
	g.Go(func() error {
		goals, err := s.repo.Goals(gctx, userID)
		if err != nil {
			return fmt.Errorf("Failed to fetch goals: %w", err)
		}
		d.Goals = GoalsProgress(goals)
		return nil
	})
	g.Go(func() error {
		analytics, err := s.GetSpendingAnalytics(gctx, userID, budget.PeriodMonth)
		if err != nil {
			return err
		}
		d.Analytics = analytics
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func isLiability(accountType string) bool {
	switch accountType {
	case "credit", "credit_card", "loan":
		return true
	}
	return false
}

// SummarizeAccounts totals assets and liabilities. The total balance is
// assets minus liabilities.
func SummarizeAccounts(accounts []Account) AccountSummary {
	sum := AccountSummary{Accounts: make([]Account, 0, len(accounts))}
	for _, a := range accounts {
		if isLiability(a.Type) {
			sum.TotalLiabilities = sum.TotalLiabilities.Add(a.Balance)
		} else {
			sum.TotalAssets = sum.TotalAssets.Add(a.Balance)
		}
		sum.Accounts = append(sum.Accounts, a)
	}
	sum.AccountCount = len(accounts)
	sum.TotalBalance = sum.TotalAssets.Sub(sum.TotalLiabilities)
	return sum
}

// GoalsProgress measures each goal against its target. Progress is capped at
// 100% and the remaining amount never goes below zero.
func GoalsProgress(goals []Goal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		gp := GoalProgress{Goal: g}
		if g.TargetAmount.IsPositive() {
			gp.ProgressPercentage = min(budget.SharePercent(g.CurrentAmount, g.TargetAmount), 100)
		} else {
			gp.ProgressPercentage = 100
		}
		remaining := g.TargetAmount.Sub(g.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		gp.RemainingAmount = remaining
		gp.Completed = !g.CurrentAmount.LessThan(g.TargetAmount)
		out = append(out, gp)
	}
	return out
}
