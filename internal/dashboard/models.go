package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-tracker-backend/internal/budget"
)

// Account represents a user's bank, credit or investment account
type Account struct {
	ID       uuid.UUID       `json:"id"`
	UserID   uuid.UUID       `json:"user_id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Goal represents a savings goal
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date"`
}

// AccountSummary totals the user's accounts. Liability balances are amounts owed.
type AccountSummary struct {
	TotalBalance     decimal.Decimal `json:"total_balance"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	AccountCount     int             `json:"account_count"`
	Accounts         []Account       `json:"accounts"`
}

// GoalProgress reports how far a goal has come
type GoalProgress struct {
	Goal
	ProgressPercentage float64         `json:"progress_percentage"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	Completed          bool            `json:"completed"`
}

// CategorySpending is one slice of the spending breakdown
type CategorySpending struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

// IncomeVsExpense compares money in with money out
type IncomeVsExpense struct {
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
	ExpenseRatio float64         `json:"expense_ratio"`
}

// SpendingTrend is the expense total of one period
type SpendingTrend struct {
	Period           string          `json:"period"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Expenses         decimal.Decimal `json:"expenses"`
	ChangePercentage float64         `json:"change_percentage"`
}

// ThresholdLevel grades spending against a hardcoded category threshold.
type ThresholdLevel string

const (
	ThresholdApproaching ThresholdLevel = "approaching"
	ThresholdExceeded    ThresholdLevel = "exceeded"
)

// ThresholdWarning flags a category whose spending is high by a fixed rule
// of thumb, independent of any limit the user configured
type ThresholdWarning struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
	Threshold    decimal.Decimal `json:"threshold"`
	Level        ThresholdLevel  `json:"level"`
	Message      string          `json:"message"`
}

// SpendingAnalytics contains all analytics data for one period
type SpendingAnalytics struct {
	Period           string             `json:"period"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	MonthlyBreakdown []CategorySpending `json:"monthlyBreakdown"`
	IncomeVsExpense  IncomeVsExpense    `json:"incomeVsExpense"`
	Trends           []SpendingTrend    `json:"trends"`
	BudgetWarnings   []ThresholdWarning `json:"budgetWarnings"`
}

// Dashboard is the home screen payload
type Dashboard struct {
	Accounts           AccountSummary       `json:"accounts"`
	RecentTransactions []budget.Transaction `json:"recent_transactions"`
	Goals              []GoalProgress       `json:"goals"`
	Analytics          *SpendingAnalytics   `json:"analytics"`
}
