package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"finance-tracker-backend/internal/budget"
	"finance-tracker-backend/internal/dashboard"
)

var errTransactionNotFound = errors.New("transaction not found")

// Store is the PostgreSQL implementation of the budget and dashboard repositories
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.account_id, t.category_id, t.amount, t.is_expense, t.date, t.description,
	       c.name AS category_name, c.color AS category_color
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (budget.Transaction, error) {
	var t budget.Transaction
	var accountID, categoryID uuid.NullUUID
	err := row.Scan(
		&t.ID, &t.UserID, &accountID, &categoryID, &t.Amount, &t.IsExpense, &t.Date, &t.Description,
		&t.CategoryName, &t.CategoryColor,
	)
	if err != nil {
		return t, err
	}
	t.AccountID = accountID.UUID
	if categoryID.Valid {
		t.CategoryID = &categoryID.UUID
	}
	return t, nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]budget.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	transactions := make([]budget.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Transactions returns the user's transactions dated inside r, oldest first.
func (s *Store) Transactions(ctx context.Context, userID uuid.UUID, r budget.DateRange) ([]budget.Transaction, error) {
	return s.queryTransactions(ctx,
		transactionSelect+` WHERE t.user_id = $1 AND t.date BETWEEN $2 AND $3 ORDER BY t.date, t.created_at`,
		userID, r.Start, r.End)
}

// RecentTransactions returns the user's newest transactions.
func (s *Store) RecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]budget.Transaction, error) {
	return s.queryTransactions(ctx,
		transactionSelect+` WHERE t.user_id = $1 ORDER BY t.date DESC, t.created_at DESC LIMIT $2`,
		userID, limit)
}

// CreateTransaction inserts t and returns it joined with its category.
func (s *Store) CreateTransaction(ctx context.Context, t budget.Transaction) (budget.Transaction, error) {
	var accountID uuid.NullUUID
	if t.AccountID != uuid.Nil {
		accountID = uuid.NullUUID{UUID: t.AccountID, Valid: true}
	}
	var categoryID uuid.NullUUID
	if t.CategoryID != nil {
		categoryID = uuid.NullUUID{UUID: *t.CategoryID, Valid: true}
	}

	query := `
		INSERT INTO transactions (id, user_id, account_id, category_id, amount, is_expense, date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := s.db.ExecContext(ctx, query,
		t.ID, t.UserID, accountID, categoryID, t.Amount, t.IsExpense, t.Date, t.Description,
	); err != nil {
		return budget.Transaction{}, err
	}
	return scanTransaction(s.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = $1`, t.ID))
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errTransactionNotFound
	}
	return nil
}

// Categories returns the shared default categories plus the user's own.
func (s *Store) Categories(ctx context.Context, userID uuid.UUID) ([]budget.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, color FROM categories WHERE user_id IS NULL OR user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]budget.Category, 0)
	for rows.Next() {
		var c budget.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const limitColumns = `id, user_id, category_id, limit_amount, period, start_date, end_date`

func scanLimit(row rowScanner) (budget.BudgetLimit, error) {
	var l budget.BudgetLimit
	err := row.Scan(&l.ID, &l.UserID, &l.CategoryID, &l.LimitAmount, &l.Period, &l.StartDate, &l.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return l, budget.ErrNotFound
	}
	return l, err
}

func (s *Store) BudgetLimits(ctx context.Context, userID uuid.UUID, period budget.LimitPeriod) ([]budget.BudgetLimit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+limitColumns+` FROM budget_limits
		 WHERE user_id = $1 AND ($2::text = '' OR period = $2::text)
		 ORDER BY start_date DESC`, userID, string(period))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := make([]budget.BudgetLimit, 0)
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

func (s *Store) BudgetLimit(ctx context.Context, userID, id uuid.UUID) (budget.BudgetLimit, error) {
	return scanLimit(s.db.QueryRowContext(ctx,
		`SELECT `+limitColumns+` FROM budget_limits WHERE id = $1 AND user_id = $2`, id, userID))
}

func (s *Store) InsertBudgetLimit(ctx context.Context, l budget.BudgetLimit) (budget.BudgetLimit, error) {
	return scanLimit(s.db.QueryRowContext(ctx, `
		INSERT INTO budget_limits (id, user_id, category_id, limit_amount, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+limitColumns,
		l.ID, l.UserID, l.CategoryID, l.LimitAmount, string(l.Period), l.StartDate, l.EndDate))
}

func (s *Store) UpdateBudgetLimit(ctx context.Context, l budget.BudgetLimit) (budget.BudgetLimit, error) {
	return scanLimit(s.db.QueryRowContext(ctx, `
		UPDATE budget_limits
		SET limit_amount = $3, period = $4, start_date = $5, end_date = $6
		WHERE id = $1 AND user_id = $2
		RETURNING `+limitColumns,
		l.ID, l.UserID, l.LimitAmount, string(l.Period), l.StartDate, l.EndDate))
}

func (s *Store) DeleteBudgetLimit(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM budget_limits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return budget.ErrNotFound
	}
	return nil
}

func (s *Store) Accounts(ctx context.Context, userID uuid.UUID) ([]dashboard.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, type, balance, currency FROM accounts WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]dashboard.Account, 0)
	for rows.Next() {
		var a dashboard.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) Goals(ctx context.Context, userID uuid.UUID) ([]dashboard.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, target_amount, current_amount, target_date
		FROM goals WHERE user_id = $1 ORDER BY target_date NULLS LAST, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]dashboard.Goal, 0)
	for rows.Next() {
		var g dashboard.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
