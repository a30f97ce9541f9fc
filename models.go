package main

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-tracker-backend/internal/budget"
)

// apiResponse is the envelope every JSON endpoint except /health answers with
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// createTransactionRequest is the body of POST /api/transactions
type createTransactionRequest struct {
	AccountID   *string          `json:"account_id"`
	CategoryID  *string          `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	IsExpense   bool             `json:"is_expense"`
	Date        string           `json:"date" binding:"required"`
	Description string           `json:"description"`
}

func invalidRequest(msg, details string) error {
	return &budget.ValidationError{Message: msg, Details: details}
}

func optionalUUID(field string, s *string) (*uuid.UUID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, invalidRequest("Invalid "+field, field+" must be a valid UUID")
	}
	return &id, nil
}

// toTransaction validates the request and builds the row to insert.
func (r createTransactionRequest) toTransaction(userID uuid.UUID) (budget.Transaction, error) {
	if r.Amount == nil {
		return budget.Transaction{}, invalidRequest("Missing required field", "amount is required")
	}
	if !r.Amount.IsPositive() {
		return budget.Transaction{}, invalidRequest("Invalid amount", "amount must be greater than zero")
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return budget.Transaction{}, invalidRequest("Invalid date", "date must be formatted as YYYY-MM-DD")
	}
	accountID, err := optionalUUID("account_id", r.AccountID)
	if err != nil {
		return budget.Transaction{}, err
	}
	categoryID, err := optionalUUID("category_id", r.CategoryID)
	if err != nil {
		return budget.Transaction{}, err
	}

	t := budget.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      *r.Amount,
		IsExpense:   r.IsExpense,
		Date:        date,
		Description: strings.TrimSpace(r.Description),
	}
	if accountID != nil {
		t.AccountID = *accountID
	}
	return t, nil
}
