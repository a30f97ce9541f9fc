package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance-tracker-backend/internal/budget"
)

const userIDKey = "userID"

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, apiResponse{Success: true, Data: data})
}

// respondError maps service errors onto status codes. Anything that is not a
// validation or not-found error is an upstream failure. Every failure is
// logged before it is written.
func respondError(c *gin.Context, err error) {
	userID, _ := c.Get(userIDKey)
	attrs := []any{
		"user_id", userID,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	}

	var verr *budget.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn("invalid request", attrs...)
		c.JSON(http.StatusBadRequest, apiResponse{Error: verr.Message, Details: verr.Details})
	case errors.Is(err, budget.ErrNotFound):
		slog.Warn("resource not found", attrs...)
		c.JSON(http.StatusNotFound, apiResponse{Error: "Budget limit not found"})
	case errors.Is(err, errTransactionNotFound):
		slog.Warn("resource not found", attrs...)
		c.JSON(http.StatusNotFound, apiResponse{Error: "Transaction not found"})
	default:
		slog.Error("request failed", attrs...)
		c.JSON(http.StatusInternalServerError, apiResponse{Error: err.Error()})
	}
}

// requireUser reads the caller's identity from X-User-ID, which the auth
// proxy in front of this service sets.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader("X-User-ID"))
		if err != nil {
			slog.Warn("unauthorized request", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiResponse{
				Error:   "Unauthorized",
				Details: "X-User-ID header must be a valid UUID",
			})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func currentUser(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
