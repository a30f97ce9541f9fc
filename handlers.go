package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance-tracker-backend/internal/budget"
	"finance-tracker-backend/internal/dashboard"
)

const transactionListLimit = 100

// ledgerStore is everything the handlers need from persistence. *Store
// implements it against PostgreSQL.
type ledgerStore interface {
	budget.Repository
	dashboard.Repository
	Ping(ctx context.Context) error
	CreateTransaction(ctx context.Context, t budget.Transaction) (budget.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

type server struct {
	store     ledgerStore
	budget    *budget.Service
	dashboard *dashboard.Service
}

func newRouter(s *server, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)

	api := r.Group("/api", requireUser())
	api.GET("/transactions", s.getTransactions)
	api.POST("/transactions", s.addTransaction)
	api.DELETE("/transactions/:id", s.deleteTransaction)
	api.GET("/categories", s.getCategories)

	b := api.Group("/budget")
	b.GET("/analysis", s.getBudgetAnalysis)
	b.GET("/trends", s.getBudgetTrends)
	b.GET("/categories", s.getCategoryBreakdown)
	b.GET("/warnings", s.getBudgetWarnings)
	b.GET("/export", s.exportBudgetReport)
	b.GET("/limits", s.listBudgetLimits)
	b.POST("/limits", s.createBudgetLimit)
	b.GET("/limits/:id", s.getBudgetLimit)
	b.PUT("/limits/:id", s.updateBudgetLimit)
	b.DELETE("/limits/:id", s.deleteBudgetLimit)

	api.GET("/dashboard", s.getDashboard)
	api.GET("/dashboard/analytics", s.getSpendingAnalytics)

	return r
}

// healthCheck handles the health check endpoint
func (s *server) healthCheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "finance-tracker-backend",
	})
}

// getTransactions returns the caller's most recent transactions
func (s *server) getTransactions(c *gin.Context) {
	transactions, err := s.store.RecentTransactions(c.Request.Context(), currentUser(c), transactionListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, transactions)
}

// addTransaction creates a new transaction
func (s *server) addTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidRequest("Invalid request body", err.Error()))
		return
	}
	userID := currentUser(c)
	t, err := req.toTransaction(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := s.store.CreateTransaction(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}

	// Invalidate cached budget reports
	s.budget.Invalidate(c.Request.Context(), userID)

	respond(c, http.StatusCreated, created)
}

// deleteTransaction removes a transaction by ID
func (s *server) deleteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, invalidRequest("Invalid transaction id", "id must be a valid UUID"))
		return
	}
	userID := currentUser(c)

	if err := s.store.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	// Invalidate cached budget reports
	s.budget.Invalidate(c.Request.Context(), userID)

	respond(c, http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// getCategories returns the shared categories plus the caller's own
func (s *server) getCategories(c *gin.Context) {
	categories, err := s.store.Categories(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}
