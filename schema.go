package main

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// demoUserID owns the demo data seeded by -seed-demo.
var demoUserID = uuid.MustParse("00000000-0000-4000-8000-00000000d3e0")

const seedSQL = `
	INSERT INTO categories (user_id, name, type, color) VALUES
		(NULL, 'Food & Dining', 'expense', '#FF6B6B'),
		(NULL, 'Groceries', 'expense', '#E74C3C'),
		(NULL, 'Rent', 'expense', '#E67E22'),
		(NULL, 'Utilities', 'expense', '#F39C12'),
		(NULL, 'Transportation', 'expense', '#3498DB'),
		(NULL, 'Entertainment', 'expense', '#9B59B6'),
		(NULL, 'Shopping', 'expense', '#FD79A8'),
		(NULL, 'Salary', 'income', '#27AE60'),
		(NULL, 'Freelance', 'income', '#16A085')
	ON CONFLICT DO NOTHING;
`

func seedDefaultCategories(db *sql.DB) (int64, error) {
	result, err := db.Exec(seedSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to seed categories: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Seed demo accounts, transactions, budget limits and goals for the demo user.
// Idempotent: will only run if the demo user has no transactions.
func seedDemoData(db *sql.DB) error {
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, demoUserID).Scan(&cnt); err != nil {
		return fmt.Errorf("checking transactions count: %w", err)
	}
	if cnt > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	checking, savings, visa := uuid.New(), uuid.New(), uuid.New()
	const demoAccounts = `
	INSERT INTO accounts (id, user_id, name, type, balance) VALUES
	($1, $4, 'Everyday Checking', 'checking', 2450.18),
	($2, $4, 'High Yield Savings', 'savings', 8200.00),
	($3, $4, 'Visa Rewards', 'credit', 612.40)
	`
	if _, err := tx.Exec(demoAccounts, checking, savings, visa, demoUserID); err != nil {
		return fmt.Errorf("seeding demo accounts: %w", err)
	}

	// Income/expense transactions over the last ~60 days. Categories come
	// from seedDefaultCategories.
	const demoTx = `
	INSERT INTO transactions (user_id, account_id, category_id, amount, is_expense, date, description) VALUES
	($1, $2, (SELECT id FROM categories WHERE name='Salary' AND user_id IS NULL), 3200.00, false, CURRENT_DATE - INTERVAL '58 days', 'Monthly Salary'),
	($1, $2, (SELECT id FROM categories WHERE name='Rent' AND user_id IS NULL), 1500.00, true, CURRENT_DATE - INTERVAL '55 days', 'Rent - Apartment'),
	($1, $3, (SELECT id FROM categories WHERE name='Groceries' AND user_id IS NULL), 88.20, true, CURRENT_DATE - INTERVAL '50 days', 'Groceries - Farmers Market'),
	($1, $3, (SELECT id FROM categories WHERE name='Entertainment' AND user_id IS NULL), 64.00, true, CURRENT_DATE - INTERVAL '41 days', 'Streaming bundle'),
	($1, $2, (SELECT id FROM categories WHERE name='Salary' AND user_id IS NULL), 3200.00, false, CURRENT_DATE - INTERVAL '28 days', 'Monthly Salary'),
	($1, $2, (SELECT id FROM categories WHERE name='Freelance' AND user_id IS NULL), 850.00, false, CURRENT_DATE - INTERVAL '25 days', 'Freelance: Landing Page'),
	($1, $2, (SELECT id FROM categories WHERE name='Rent' AND user_id IS NULL), 1500.00, true, CURRENT_DATE - INTERVAL '24 days', 'Rent - Apartment'),
	($1, $2, (SELECT id FROM categories WHERE name='Utilities' AND user_id IS NULL), 120.45, true, CURRENT_DATE - INTERVAL '22 days', 'Utilities - Electricity'),
	($1, $3, (SELECT id FROM categories WHERE name='Groceries' AND user_id IS NULL), 96.72, true, CURRENT_DATE - INTERVAL '20 days', 'Groceries - Whole Foods'),
	($1, $3, (SELECT id FROM categories WHERE name='Transportation' AND user_id IS NULL), 45.00, true, CURRENT_DATE - INTERVAL '19 days', 'Subway Pass'),
	($1, $3, (SELECT id FROM categories WHERE name='Entertainment' AND user_id IS NULL), 28.50, true, CURRENT_DATE - INTERVAL '16 days', 'Movie Night'),
	($1, $3, (SELECT id FROM categories WHERE name='Groceries' AND user_id IS NULL), 64.11, true, CURRENT_DATE - INTERVAL '14 days', 'Groceries - Trader Joes'),
	($1, $2, (SELECT id FROM categories WHERE name='Utilities' AND user_id IS NULL), 60.00, true, CURRENT_DATE - INTERVAL '11 days', 'Utilities - Internet'),
	($1, $3, (SELECT id FROM categories WHERE name='Entertainment' AND user_id IS NULL), 140.00, true, CURRENT_DATE - INTERVAL '8 days', 'Concert Tickets'),
	($1, $3, (SELECT id FROM categories WHERE name='Groceries' AND user_id IS NULL), 132.39, true, CURRENT_DATE - INTERVAL '6 days', 'Groceries - Costco'),
	($1, $3, (SELECT id FROM categories WHERE name='Transportation' AND user_id IS NULL), 22.30, true, CURRENT_DATE - INTERVAL '4 days', 'Rideshare'),
	($1, $3, NULL, 54.80, true, CURRENT_DATE - INTERVAL '1 days', 'Dinner Out')
	`
	if _, err := tx.Exec(demoTx, demoUserID, checking, visa); err != nil {
		return fmt.Errorf("seeding demo transactions: %w", err)
	}

	const demoLimits = `
	INSERT INTO budget_limits (user_id, category_id, limit_amount, period, start_date, end_date) VALUES
	($1, (SELECT id FROM categories WHERE name='Groceries' AND user_id IS NULL), 400.00, 'monthly',
		date_trunc('month', CURRENT_DATE), date_trunc('month', CURRENT_DATE) + INTERVAL '1 month' - INTERVAL '1 second'),
	($1, (SELECT id FROM categories WHERE name='Entertainment' AND user_id IS NULL), 200.00, 'monthly',
		date_trunc('month', CURRENT_DATE), date_trunc('month', CURRENT_DATE) + INTERVAL '1 month' - INTERVAL '1 second'),
	($1, (SELECT id FROM categories WHERE name='Transportation' AND user_id IS NULL), 150.00, 'monthly',
		date_trunc('month', CURRENT_DATE), date_trunc('month', CURRENT_DATE) + INTERVAL '1 month' - INTERVAL '1 second')
	`
	if _, err := tx.Exec(demoLimits, demoUserID); err != nil {
		return fmt.Errorf("seeding demo budget limits: %w", err)
	}

	const demoGoals = `
	INSERT INTO goals (user_id, name, target_amount, current_amount, target_date) VALUES
	($1, 'Emergency Fund', 10000.00, 8200.00, CURRENT_DATE + INTERVAL '6 months'),
	($1, 'Summer Vacation', 2500.00, 900.00, CURRENT_DATE + INTERVAL '4 months')
	`
	if _, err := tx.Exec(demoGoals, demoUserID); err != nil {
		return fmt.Errorf("seeding demo goals: %w", err)
	}

	return tx.Commit()
}
