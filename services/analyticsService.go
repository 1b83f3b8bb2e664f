package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"
)

// AnalyticsStore is the slice of the order store the analytics service reads.
type AnalyticsStore interface {
	Find(ctx context.Context, filter store.OrderFilter) ([]models.Order, error)
	PopularItems(ctx context.Context, since time.Time, limit int) ([]store.PopularItem, error)
	RevenueBuckets(ctx context.Context, from time.Time, to *time.Time, monthly bool) ([]store.RevenueBucket, error)
}

type AnalyticsService struct {
	store AnalyticsStore
	now   func() time.Time
}

func NewAnalyticsService(analyticsStore AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: analyticsStore, now: time.Now}
}

// Overview summarizes order volume and revenue for a period.
type Overview struct {
	Period            string                     `json:"period"`
	TotalOrders       int                        `json:"total_orders"`
	TotalRevenue      float64                    `json:"total_revenue"`
	AverageOrderValue float64                    `json:"average_order_value"`
	StatusBreakdown   map[models.OrderStatus]int `json:"status_breakdown"`
	DailyRevenue      map[string]float64         `json:"daily_revenue"`
}

// periodStart maps a named period onto its start time. Unknown values fall
// back to a week.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

func (s *AnalyticsService) GetOverview(ctx context.Context, period string) (*Overview, error) {
	now := s.now()
	since := periodStart(period, now)

	orders, err := s.store.Find(ctx, store.OrderFilter{From: &since})
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Period:          period,
		TotalOrders:     len(orders),
		StatusBreakdown: map[models.OrderStatus]int{},
		DailyRevenue:    map[string]float64{},
	}

	for _, order := range orders {
		overview.TotalRevenue += order.Total
		overview.StatusBreakdown[order.Status]++
		day := order.CreatedAt.Format("2006-01-02")
		overview.DailyRevenue[day] += order.Total
	}
	if overview.TotalOrders > 0 {
		overview.AverageOrderValue = overview.TotalRevenue / float64(overview.TotalOrders)
	}

	overview.TotalRevenue = round2(overview.TotalRevenue)
	overview.AverageOrderValue = round2(overview.AverageOrderValue)
	return overview, nil
}

func (s *AnalyticsService) GetPopularItems(ctx context.Context, period string, limit int) ([]store.PopularItem, error) {
	if limit < 1 {
		limit = 10
	}
	since := periodStart(period, s.now())
	return s.store.PopularItems(ctx, since, limit)
}

// RevenueStats compares a period's revenue against the period immediately
// before it.
type RevenueStats struct {
	Period                string                `json:"period"`
	DateFormat            string                `json:"date_format"`
	CurrentPeriodRevenue  float64               `json:"current_period_revenue"`
	PreviousPeriodRevenue float64               `json:"previous_period_revenue"`
	GrowthRate            float64               `json:"growth_rate"`
	Stats                 []store.RevenueBucket `json:"stats"`
}

// comparisonPeriod normalizes the period names the comparison endpoints
// accept. Anything unrecognized means a month.
func comparisonPeriod(period string) string {
	switch period {
	case "week", "year":
		return period
	default:
		return "month"
	}
}

// GetRevenueStats buckets non-cancelled revenue by day (week/month periods) or
// month (year period) and reports growth against the preceding period.
func (s *AnalyticsService) GetRevenueStats(ctx context.Context, period string) (*RevenueStats, error) {
	period = comparisonPeriod(period)
	now := s.now()
	since := periodStart(period, now)
	previousSince := periodStart(period, since)
	monthly := period == "year"

	current, err := s.store.RevenueBuckets(ctx, since, nil, monthly)
	if err != nil {
		return nil, err
	}
	previous, err := s.store.RevenueBuckets(ctx, previousSince, &since, monthly)
	if err != nil {
		return nil, err
	}

	stats := &RevenueStats{Period: period, DateFormat: "daily", Stats: current}
	if monthly {
		stats.DateFormat = "monthly"
	}
	for _, bucket := range current {
		stats.CurrentPeriodRevenue += bucket.Revenue
	}
	for _, bucket := range previous {
		stats.PreviousPeriodRevenue += bucket.Revenue
	}
	if stats.PreviousPeriodRevenue > 0 {
		stats.GrowthRate = (stats.CurrentPeriodRevenue - stats.PreviousPeriodRevenue) / stats.PreviousPeriodRevenue * 100
	}

	stats.CurrentPeriodRevenue = round2(stats.CurrentPeriodRevenue)
	stats.PreviousPeriodRevenue = round2(stats.PreviousPeriodRevenue)
	stats.GrowthRate = round2(stats.GrowthRate)
	return stats, nil
}

// CustomerCount pairs a customer name with how many orders they placed.
type CustomerCount struct {
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}

// TableCount pairs a table with how many orders it seated.
type TableCount struct {
	Table      string `json:"table"`
	OrderCount int    `json:"order_count"`
}

// CustomerInsights summarizes who orders and where they sit over a period.
type CustomerInsights struct {
	Period                   string          `json:"period"`
	TotalCustomers           int             `json:"total_customers"`
	LoyalCustomers           []CustomerCount `json:"loyal_customers"`
	PopularTables            []TableCount    `json:"popular_tables"`
	AverageOrdersPerCustomer float64         `json:"average_orders_per_customer"`
}

// GetCustomerInsights counts distinct customers, repeat customers, and table
// usage for a period. Cancelled orders are excluded; orders with no customer
// name are grouped under "Anonymous".
func (s *AnalyticsService) GetCustomerInsights(ctx context.Context, period string) (*CustomerInsights, error) {
	period = comparisonPeriod(period)
	since := periodStart(period, s.now())

	orders, err := s.store.Find(ctx, store.OrderFilter{From: &since})
	if err != nil {
		return nil, err
	}

	byCustomer := map[string]int{}
	byTable := map[string]int{}
	counted := 0
	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		counted++

		name := order.CustomerName
		if name == "" {
			name = "Anonymous"
		}
		byCustomer[name]++
		if order.TableNumber != "" {
			byTable[order.TableNumber]++
		}
	}

	insights := &CustomerInsights{
		Period:         period,
		TotalCustomers: len(byCustomer),
		LoyalCustomers: []CustomerCount{},
		PopularTables:  []TableCount{},
	}

	for name, count := range byCustomer {
		if count > 1 {
			insights.LoyalCustomers = append(insights.LoyalCustomers, CustomerCount{Name: name, OrderCount: count})
		}
	}
	sort.Slice(insights.LoyalCustomers, func(i, j int) bool {
		a, b := insights.LoyalCustomers[i], insights.LoyalCustomers[j]
		if a.OrderCount != b.OrderCount {
			return a.OrderCount > b.OrderCount
		}
		return a.Name < b.Name
	})
	if len(insights.LoyalCustomers) > 10 {
		insights.LoyalCustomers = insights.LoyalCustomers[:10]
	}

	for table, count := range byTable {
		insights.PopularTables = append(insights.PopularTables, TableCount{Table: table, OrderCount: count})
	}
	sort.Slice(insights.PopularTables, func(i, j int) bool {
		a, b := insights.PopularTables[i], insights.PopularTables[j]
		if a.OrderCount != b.OrderCount {
			return a.OrderCount > b.OrderCount
		}
		return a.Table < b.Table
	})
	if len(insights.PopularTables) > 10 {
		insights.PopularTables = insights.PopularTables[:10]
	}

	if insights.TotalCustomers > 0 {
		insights.AverageOrdersPerCustomer = round2(float64(counted) / float64(insights.TotalCustomers))
	}
	return insights, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
