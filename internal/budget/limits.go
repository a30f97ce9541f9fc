package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLimitInput is the payload for a new budget limit.
type CreateLimitInput struct {
	CategoryID  string           `json:"category_id"`
	LimitAmount *decimal.Decimal `json:"limit_amount"`
	Period      string           `json:"period"`
}

// UpdateLimitInput changes the amount and/or the recurrence of a limit.
type UpdateLimitInput struct {
	LimitAmount *decimal.Decimal `json:"limit_amount"`
	Period      *string          `json:"period"`
}

func validateAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return invalid("Missing required field", "limit_amount is required")
	}
	if amount.IsNegative() {
		return invalid("Invalid limit_amount", "limit_amount must be zero or greater")
	}
	return nil
}

// CreateBudgetLimit validates the input, derives the limit's dates from its
// recurrence and stores it.
func (s *Service) CreateBudgetLimit(ctx context.Context, userID uuid.UUID, in CreateLimitInput) (*BudgetLimit, error) {
	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, invalid("Missing required field", "category_id is required")
	}
	categoryID, err := uuid.Parse(in.CategoryID)
	if err != nil {
		return nil, invalid("Invalid category_id", "category_id must be a valid UUID")
	}
	if err := validateAmount(in.LimitAmount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Period) == "" {
		return nil, invalid("Missing required field", "period is required")
	}
	period, err := ParseLimitPeriod(in.Period)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.Categories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch categories: %w", err)
	}
	known := false
	for _, c := range categories {
		if c.ID == categoryID {
			known = true
			break
		}
	}
	if !known {
		return nil, invalid("Invalid category_id", "category does not exist")
	}

	dates := LimitDates(period, s.now())
	created, err := s.repo.InsertBudgetLimit(ctx, BudgetLimit{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: *in.LimitAmount,
		Period:      period,
		StartDate:   dates.Start,
		EndDate:     dates.End,
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to create budget limit: %w", err)
	}
	s.Invalidate(ctx, userID)
	return &created, nil
}

// ListBudgetLimits returns every limit the user owns.
func (s *Service) ListBudgetLimits(ctx context.Context, userID uuid.UUID) ([]BudgetLimit, error) {
	limits, err := s.repo.BudgetLimits(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch budget limits: %w", err)
	}
	return limits, nil
}

func (s *Service) GetBudgetLimit(ctx context.Context, userID, id uuid.UUID) (*BudgetLimit, error) {
	l, err := s.repo.BudgetLimit(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch budget limit: %w", err)
	}
	return &l, nil
}

// UpdateBudgetLimit changes a limit in place. A new recurrence regenerates
// the limit's dates.
func (s *Service) UpdateBudgetLimit(ctx context.Context, userID, id uuid.UUID, in UpdateLimitInput) (*BudgetLimit, error) {
	if in.LimitAmount == nil && in.Period == nil {
		return nil, invalid("No fields to update", "provide limit_amount and/or period")
	}
	if in.LimitAmount != nil {
		if err := validateAmount(in.LimitAmount); err != nil {
			return nil, err
		}
	}
	var period LimitPeriod
	if in.Period != nil {
		p, err := ParseLimitPeriod(*in.Period)
		if err != nil {
			return nil, err
		}
		period = p
	}

	l, err := s.repo.BudgetLimit(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch budget limit: %w", err)
	}
	if in.LimitAmount != nil {
		l.LimitAmount = *in.LimitAmount
	}
	if period != "" && period != l.Period {
		dates := LimitDates(period, s.now())
		l.Period = period
		l.StartDate = dates.Start
		l.EndDate = dates.End
	}

	updated, err := s.repo.UpdateBudgetLimit(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("Failed to update budget limit: %w", err)
	}
	s.Invalidate(ctx, userID)
	return &updated, nil
}

func (s *Service) DeleteBudgetLimit(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteBudgetLimit(ctx, userID, id); err != nil {
		return fmt.Errorf("Failed to delete budget limit: %w", err)
	}
	s.Invalidate(ctx, userID)
	return nil
}
