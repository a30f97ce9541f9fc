package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data store the budget service reads from and writes to.
// Implementations return ErrNotFound (possibly wrapped) for unknown limits.
type Repository interface {
	// Transactions returns the user's transactions dated inside r, joined
	// with their category name and color.
	Transactions(ctx context.Context, userID uuid.UUID, r DateRange) ([]Transaction, error)

	// BudgetLimits returns the user's limits with the given recurrence.
	// An empty period returns every limit.
	BudgetLimits(ctx context.Context, userID uuid.UUID, period LimitPeriod) ([]BudgetLimit, error)

	BudgetLimit(ctx context.Context, userID, id uuid.UUID) (BudgetLimit, error)
	InsertBudgetLimit(ctx context.Context, limit BudgetLimit) (BudgetLimit, error)
	UpdateBudgetLimit(ctx context.Context, limit BudgetLimit) (BudgetLimit, error)
	DeleteBudgetLimit(ctx context.Context, userID, id uuid.UUID) error

	Categories(ctx context.Context, userID uuid.UUID) ([]Category, error)
}

// Cache stores serialized reports for a short time. Get returns ErrCacheMiss
// for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// InvalidateUser drops every cached entry belonging to userID.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
