package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const defaultPerPage = 25

var orderService service.OrderService

// InitOrderHandler wires the order handlers to their service
func InitOrderHandler(svc service.OrderService) {
	orderService = svc
}

// queryStatus reads an optional ?status= filter
func queryStatus(c echo.Context) (*model.OrderStatus, error) {
	raw := c.QueryParam("status")
	if raw == "" {
		return nil, nil
	}
	status, err := model.ParseOrderStatus(raw)
	if err != nil {
		return nil, model.NewFieldError("status", err)
	}
	return &status, nil
}

// queryInt reads a positive integer query parameter
func queryInt(c echo.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(c.QueryParam(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// ListOrders handles the order listing, newest first
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	status, err := queryStatus(c)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)
	filter := model.OrderFilter{Status: status, Limit: perPage, Offset: (page - 1) * perPage}
	if raw := c.QueryParam("customer_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			customerID := uint(id)
			filter.CustomerID = &customerID
		} else {
			log.Warn("Invalid customer_id parameter", zap.String("value", raw), zap.Error(err))
		}
	}
	log.Info("Listing orders", zap.Int("page", page), zap.Int("per_page", perPage))

	orders, total, err := orderService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)), zap.Int64("total", total))
	return c.JSON(http.StatusOK, echo.Map{
		"data":     newOrderResponses(orders, requestLanguage(c)),
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// GetOrder returns one order with its items and computed total
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Order")
	}
	log.Info("Getting order by ID", zap.Uint("order_id", id))

	order, err := orderService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	return c.JSON(http.StatusOK, newOrderResponse(order, requestLanguage(c)))
}

// CreateOrder creates an order; unit prices are copied from the products
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new order")

	var req service.OrderInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Order")
	}

	order, err := orderService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	log.Info("Order created successfully",
		zap.Uint("order_id", order.ID),
		zap.String("number", order.Number),
		zap.Uint("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total().String()))
	return c.JSON(http.StatusCreated, newOrderResponse(order, requestLanguage(c)))
}

// UpdateOrder replaces header and items of an order at the given version
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	var req service.OrderInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Order")
	}
	if req.Version < 1 {
		log.Warn("Order update without version", zap.Uint("order_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Validation failed",
			"errors": map[string]string{"version": "is required"},
		})
	}
	log.Info("Updating order", zap.Uint("order_id", id), zap.Int("version", req.Version))

	order, err := orderService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	log.Info("Order updated successfully",
		zap.Uint("order_id", id),
		zap.Int("version", order.Version),
		zap.String("total", order.Total().String()))
	return c.JSON(http.StatusOK, newOrderResponse(order, requestLanguage(c)))
}

// UpdateOrderStatus changes only the status of an order
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	var req service.StatusInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Order")
	}
	log.Info("Changing order status",
		zap.Uint("order_id", id),
		zap.String("status", string(req.Status)))

	order, err := orderService.ChangeStatus(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Order")
	}

	return c.JSON(http.StatusOK, newOrderResponse(order, requestLanguage(c)))
}

// DeleteOrder soft deletes an order
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Order")
	}
	log.Info("Deleting order", zap.Uint("order_id", id))

	if err := orderService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err, "Order")
	}

	log.Info("Order deleted successfully", zap.Uint("order_id", id))
	return c.NoContent(http.StatusNoContent)
}
