package services

import (
	"sort"
	"time"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
)

// topProductLimit caps the top-products ranking on the dashboard.
const topProductLimit = 5

// StatusSlice is one wedge of the order-status distribution.
type StatusSlice struct {
	Status     models.OrderStatus `json:"status"`
	Count      int                `json:"count"`
	Percentage float64            `json:"percentage"`
}

// ProductSales aggregates the sales of one product from order-item snapshots.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// AnalyticsSummary is the admin dashboard payload for one day-window.
type AnalyticsSummary struct {
	From              time.Time      `json:"from"`
	To                time.Time      `json:"to"`
	TotalRevenue      float64        `json:"total_revenue"`
	TotalOrders       int            `json:"total_orders"`
	AverageOrderValue float64        `json:"average_order_value"`
	RevenueGrowth     float64        `json:"revenue_growth"` // percent vs previous window
	OrdersGrowth      float64        `json:"orders_growth"`  // percent vs previous window
	StatusBreakdown   []StatusSlice  `json:"status_breakdown"`
	TopProducts       []ProductSales `json:"top_products"`
}

// AnalyticsService computes the admin dashboard numbers from order history.
type AnalyticsService struct {
	orderRepo repositories.OrderRepository
	now       func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(orderRepo repositories.OrderRepository) *AnalyticsService {
	return &AnalyticsService{
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// Summary computes the analytics for the last `days` days, with growth
// figures against the window of equal length immediately before it.
func (s *AnalyticsService) Summary(days int) (*AnalyticsSummary, error) {
	if days <= 0 {
		days = 30
	}
	to := s.now()
	from := to.AddDate(0, 0, -days)
	prevFrom := from.AddDate(0, 0, -days)

	orders, err := s.orderRepo.GetCreatedBetween(from, to)
	if err != nil {
		return nil, err
	}
	prevOrders, err := s.orderRepo.GetCreatedBetween(prevFrom, from)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		From:        from,
		To:          to,
		TotalOrders: len(orders),
	}
	for _, order := range orders {
		summary.TotalRevenue += order.TotalAmount
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	var prevRevenue float64
	for _, order := range prevOrders {
		prevRevenue += order.TotalAmount
	}
	if prevRevenue > 0 {
		summary.RevenueGrowth = (summary.TotalRevenue - prevRevenue) / prevRevenue * 100
	}
	if len(prevOrders) > 0 {
		summary.OrdersGrowth = float64(len(orders)-len(prevOrders)) / float64(len(prevOrders)) * 100
	}

	summary.StatusBreakdown = statusBreakdown(orders)
	summary.TopProducts = topProducts(orders, topProductLimit)
	return summary, nil
}

func statusBreakdown(orders []models.Order) []StatusSlice {
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		counts[order.Status]++
	}

	slices := make([]StatusSlice, 0, len(counts))
	for status, count := range counts {
		slice := StatusSlice{Status: status, Count: count}
		if len(orders) > 0 {
			slice.Percentage = float64(count) / float64(len(orders)) * 100
		}
		slices = append(slices, slice)
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Status < slices[j].Status
	})
	return slices
}

// topProducts ranks products by revenue using the order-item snapshots, so
// the ranking reflects what was actually charged, not current prices.
func topProducts(orders []models.Order, limit int) []ProductSales {
	sales := make(map[string]*ProductSales)
	for _, order := range orders {
		for _, item := range order.Items {
			ps, ok := sales[item.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				sales[item.ProductID] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue += item.Price * float64(item.Quantity)
		}
	}

	ranked := make([]ProductSales, 0, len(sales))
	for _, ps := range sales {
		ranked = append(ranked, *ps)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
