package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction joined with its category
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	IsExpense     bool            `json:"is_expense"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CategoryName  *string         `json:"category_name"`
	CategoryColor *string         `json:"category_color"`
}

// Category represents a transaction category
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Color string    `json:"color"`
}

// LimitPeriod is the recurrence of a budget limit.
type LimitPeriod string

const (
	LimitWeekly  LimitPeriod = "weekly"
	LimitMonthly LimitPeriod = "monthly"
	LimitYearly  LimitPeriod = "yearly"
)

// BudgetLimit is a user-defined spending cap for one category
type BudgetLimit struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      LimitPeriod     `json:"period"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
}

// LimitStatus classifies spending against a category limit.
type LimitStatus string

const (
	StatusUnderLimit       LimitStatus = "under_limit"
	StatusApproachingLimit LimitStatus = "approaching_limit"
	StatusOverLimit        LimitStatus = "over_limit"
	StatusNoLimit          LimitStatus = "no_limit"
)

// CategoryBudget is the per-category spending aggregate for one period
type CategoryBudget struct {
	CategoryID        *uuid.UUID       `json:"category_id"`
	CategoryName      string           `json:"category_name"`
	SpentAmount       decimal.Decimal  `json:"spent_amount"`
	LimitAmount       *decimal.Decimal `json:"limit_amount"`
	PercentageOfTotal float64          `json:"percentage_of_total"`
	PercentageOfLimit *float64         `json:"percentage_of_limit"`
	Status            LimitStatus      `json:"status"`
	Color             string           `json:"color"`
}

// TrendDirection describes how a category moved between two periods.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// CategoryTrend compares one category's spending with the previous period
type CategoryTrend struct {
	CategoryID       *uuid.UUID      `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	CurrentAmount    decimal.Decimal `json:"current_amount"`
	PreviousAmount   decimal.Decimal `json:"previous_amount"`
	ChangePercentage float64         `json:"change_percentage"`
	TrendDirection   TrendDirection  `json:"trend_direction"`
}

// BudgetTrend summarises one historical period window
type BudgetTrend struct {
	Period           string          `json:"period"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	ChangePercentage float64         `json:"change_percentage"`
	CategoryChanges  []CategoryTrend `json:"category_changes"`
}

// WarningLevel is the severity of a limit-based warning.
type WarningLevel string

const (
	WarningLow      WarningLevel = "low"
	WarningMedium   WarningLevel = "medium"
	WarningHigh     WarningLevel = "high"
	WarningCritical WarningLevel = "critical"
)

// BudgetWarning flags a category close to or beyond its limit
type BudgetWarning struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	WarningLevel WarningLevel    `json:"warning_level"`
	Message      string          `json:"message"`
}

// RecommendationType is the kind of suggested budget adjustment.
type RecommendationType string

const (
	RecommendLimitAdjustment   RecommendationType = "limit_adjustment"
	RecommendSpendingReduction RecommendationType = "spending_reduction"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// BudgetRecommendation is a heuristic suggestion for the user
type BudgetRecommendation struct {
	Type             RecommendationType `json:"type"`
	CategoryID       *uuid.UUID         `json:"category_id"`
	CategoryName     string             `json:"category_name"`
	Message          string             `json:"message"`
	PotentialSavings *decimal.Decimal   `json:"potential_savings,omitempty"`
	Priority         Priority           `json:"priority"`
}

// BudgetAnalysis is the full report returned by GetBudgetAnalysis
type BudgetAnalysis struct {
	Period            string                 `json:"period"`
	StartDate         time.Time              `json:"start_date"`
	EndDate           time.Time              `json:"end_date"`
	TotalIncome       decimal.Decimal        `json:"total_income"`
	TotalExpenses     decimal.Decimal        `json:"total_expenses"`
	NetAmount         decimal.Decimal        `json:"net_amount"`
	CategoryBreakdown []CategoryBudget       `json:"category_breakdown"`
	Trends            []BudgetTrend          `json:"trends"`
	Warnings          []BudgetWarning        `json:"warnings"`
	Recommendations   []BudgetRecommendation `json:"recommendations"`
}
