package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *server) getDashboard(c *gin.Context) {
	d, err := s.dashboard.GetDashboard(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, d)
}

// getSpendingAnalytics serves the analytics panel for ?period=week|month|year
func (s *server) getSpendingAnalytics(c *gin.Context) {
	period, err := queryPeriod(c)
	if err != nil {
		respondError(c, err)
		return
	}
	analytics, err := s.dashboard.GetSpendingAnalytics(c.Request.Context(), currentUser(c), period)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, analytics)
}
