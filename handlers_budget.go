package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance-tracker-backend/internal/budget"
)

func queryPeriod(c *gin.Context) (budget.Period, error) {
	return budget.ParsePeriod(c.Query("period"))
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidRequest("Invalid "+name, name+" must be an integer")
	}
	return n, nil
}

func limitID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, invalidRequest("Invalid budget limit id", "id must be a valid UUID")
	}
	return id, nil
}

func (s *server) getBudgetAnalysis(c *gin.Context) {
	period, err := queryPeriod(c)
	if err != nil {
		respondError(c, err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	analysis, err := s.budget.GetBudgetAnalysis(c.Request.Context(), currentUser(c), period, year)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, analysis)
}

func (s *server) getBudgetTrends(c *gin.Context) {
	period, err := queryPeriod(c)
	if err != nil {
		respondError(c, err)
		return
	}
	months, err := queryInt(c, "months")
	if err != nil {
		respondError(c, err)
		return
	}
	trends, err := s.budget.GetBudgetTrends(c.Request.Context(), currentUser(c), period, months)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, trends)
}

func (s *server) getCategoryBreakdown(c *gin.Context) {
	period, err := queryPeriod(c)
	if err != nil {
		respondError(c, err)
		return
	}
	breakdown, err := s.budget.GetCategoryBreakdown(c.Request.Context(), currentUser(c), period)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, breakdown)
}

func (s *server) getBudgetWarnings(c *gin.Context) {
	warnings, err := s.budget.GetBudgetWarnings(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, warnings)
}

// exportBudgetReport streams the serialized report as a download. The body is
// not wrapped in the response envelope.
func (s *server) exportBudgetReport(c *gin.Context) {
	report, err := s.budget.ExportBudgetReport(c.Request.Context(), currentUser(c),
		c.Query("type"), c.Query("period"), c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Body)
}

func (s *server) listBudgetLimits(c *gin.Context) {
	limits, err := s.budget.ListBudgetLimits(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, limits)
}

func (s *server) createBudgetLimit(c *gin.Context) {
	var in budget.CreateLimitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, invalidRequest("Invalid request body", err.Error()))
		return
	}
	limit, err := s.budget.CreateBudgetLimit(c.Request.Context(), currentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, limit)
}

func (s *server) getBudgetLimit(c *gin.Context) {
	id, err := limitID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := s.budget.GetBudgetLimit(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, limit)
}

func (s *server) updateBudgetLimit(c *gin.Context) {
	id, err := limitID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in budget.UpdateLimitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, invalidRequest("Invalid request body", err.Error()))
		return
	}
	limit, err := s.budget.UpdateBudgetLimit(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, limit)
}

func (s *server) deleteBudgetLimit(c *gin.Context) {
	id, err := limitID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.budget.DeleteBudgetLimit(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Budget limit deleted"})
}
