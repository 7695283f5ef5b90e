package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	dashboardService service.DashboardService
	now              = time.Now
)

// InitDashboardHandler wires the dashboard handlers to their service
func InitDashboardHandler(svc service.DashboardService) {
	dashboardService = svc
}

// StatusBucket is one slice of the orders-per-status chart
type StatusBucket struct {
	Status model.OrderStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int64             `json:"count"`
}

// DashboardStats serves the stat cards
func DashboardStats(c echo.Context) error {
	log := logger.FromContext(c)

	stats, err := dashboardService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Dashboard")
	}

	return c.JSON(http.StatusOK, stats)
}

// OrdersByStatus serves the status chart; every status is present
func OrdersByStatus(c echo.Context) error {
	log := logger.FromContext(c)

	counts, err := dashboardService.OrdersByStatus(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Dashboard")
	}

	lang := requestLanguage(c)
	buckets := make([]StatusBucket, 0, len(model.OrderStatuses))
	for _, status := range model.OrderStatuses {
		buckets = append(buckets, StatusBucket{
			Status: status,
			Label:  statusLabel(lang, status),
			Count:  counts[status],
		})
	}

	log.Info("Order status counts computed", zap.Any("counts", counts))
	return c.JSON(http.StatusOK, buckets)
}

// ProductsPerMonth serves the monthly product chart for ?year= or the
// current year
func ProductsPerMonth(c echo.Context) error {
	log := logger.FromContext(c)

	ref := now()
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			log.Warn("Invalid year parameter", zap.String("value", raw))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid year"})
		}
		ref = time.Date(year, time.January, 1, 0, 0, 0, 0, ref.Location())
	}

	series, err := dashboardService.ProductsPerMonth(c.Request().Context(), ref)
	if err != nil {
		return respondError(c, log, err, "Dashboard")
	}

	return c.JSON(http.StatusOK, series)
}

// LatestOrders serves the recent orders table
func LatestOrders(c echo.Context) error {
	log := logger.FromContext(c)

	status, err := queryStatus(c)
	if err != nil {
		return respondError(c, log, err, "Order")
	}
	page := queryInt(c, "page", 1)

	orders, total, err := dashboardService.LatestOrders(c.Request().Context(), status, page)
	if err != nil {
		return respondError(c, log, err, "Dashboard")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":  newOrderResponses(orders, requestLanguage(c)),
		"total": total,
		"page":  page,
	})
}

// NavigationBadge serves the processing orders badge
func NavigationBadge(c echo.Context) error {
	log := logger.FromContext(c)

	badge, err := dashboardService.NavigationBadge(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Dashboard")
	}

	return c.JSON(http.StatusOK, badge)
}
