package budget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	mu           sync.Mutex
	transactions []Transaction
	limits       map[uuid.UUID]BudgetLimit
	categories   []Category

	transactionsErr error
	limitsErr       error
	txCalls         int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{limits: make(map[uuid.UUID]BudgetLimit)}
}

func (f *fakeRepository) Transactions(ctx context.Context, userID uuid.UUID, r DateRange) ([]Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	if f.transactionsErr != nil {
		return nil, f.transactionsErr
	}
	var out []Transaction
	for _, t := range f.transactions {
		if t.UserID == userID && r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepository) BudgetLimits(ctx context.Context, userID uuid.UUID, period LimitPeriod) ([]BudgetLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.limitsErr != nil {
		return nil, f.limitsErr
	}
	var out []BudgetLimit
	for _, l := range f.limits {
		if l.UserID == userID && (period == "" || l.Period == period) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepository) BudgetLimit(ctx context.Context, userID, id uuid.UUID) (BudgetLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limits[id]
	if !ok || l.UserID != userID {
		return BudgetLimit{}, ErrNotFound
	}
	return l, nil
}

func (f *fakeRepository) InsertBudgetLimit(ctx context.Context, l BudgetLimit) (BudgetLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits[l.ID] = l
	return l, nil
}

func (f *fakeRepository) UpdateBudgetLimit(ctx context.Context, l BudgetLimit) (BudgetLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.limits[l.ID]
	if !ok || cur.UserID != l.UserID {
		return BudgetLimit{}, ErrNotFound
	}
	f.limits[l.ID] = l
	return l, nil
}

func (f *fakeRepository) DeleteBudgetLimit(ctx context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.limits[id]
	if !ok || cur.UserID != userID {
		return ErrNotFound
	}
	delete(f.limits, id)
	return nil
}

func (f *fakeRepository) Categories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	return f.categories, nil
}

func (f *fakeRepository) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txCalls
}

// fakeCache is an in-memory Cache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := "budget:" + userID.String() + ":"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var (
	testUser = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	food     = Category{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"), Name: "Food", Type: "expense", Color: "#FF6B6B"}
	travel   = Category{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"), Name: "Transport", Type: "expense", Color: "#4ECDC4"}
	fun      = Category{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003"), Name: "Entertainment", Type: "expense", Color: "#9B59B6"}
	salary   = Category{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000004"), Name: "Salary", Type: "income", Color: "#27AE60"}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func spend(c *Category, amount string, date time.Time) Transaction {
	return newTx(c, amount, true, date)
}

func earn(c *Category, amount string, date time.Time) Transaction {
	return newTx(c, amount, false, date)
}

func newTx(c *Category, amount string, isExpense bool, date time.Time) Transaction {
	t := Transaction{
		ID:        uuid.New(),
		UserID:    testUser,
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString(amount),
		IsExpense: isExpense,
		Date:      date,
	}
	if c != nil {
		id, name, color := c.ID, c.Name, c.Color
		t.CategoryID = &id
		t.CategoryName = &name
		t.CategoryColor = &color
	}
	return t
}

func limit(c Category, amount string, p LimitPeriod, r DateRange) BudgetLimit {
	return BudgetLimit{
		ID:          uuid.New(),
		UserID:      testUser,
		CategoryID:  c.ID,
		LimitAmount: decimal.RequireFromString(amount),
		Period:      p,
		StartDate:   r.Start,
		EndDate:     r.End,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
