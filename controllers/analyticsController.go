package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/services"
)

type AnalyticsController struct {
	service *services.AnalyticsService
}

func NewAnalyticsController(service *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// GetOverview summarizes order volume and revenue for a period
// (today/week/month/year, default week).
func (c *AnalyticsController) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	overview, err := c.service.GetOverview(ctx, period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Analytics retrieved successfully", overview)
}

// GetPopularItems returns the best-selling menu items for a period.
func (c *AnalyticsController) GetPopularItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}
	limit := parseLimit(r, "limit", 10)

	items, err := c.service.GetPopularItems(ctx, period, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Popular items retrieved successfully", items)
}

// GetRevenueStats returns bucketed revenue for a period (week/month/year,
// default month) with growth against the preceding period.
func (c *AnalyticsController) GetRevenueStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := c.service.GetRevenueStats(ctx, r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Revenue stats retrieved successfully", stats)
}

// GetCustomerInsights returns repeat-customer and table-usage breakdowns.
func (c *AnalyticsController) GetCustomerInsights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	insights, err := c.service.GetCustomerInsights(ctx, r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Customer insights retrieved successfully", insights)
}

// parseLimit reads a positive integer query parameter with a default.
func parseLimit(r *http.Request, key string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return def
	}
	return value
}
