package handler

import (
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var customerService service.CustomerService

// InitCustomerHandler wires the customer handlers to their service
func InitCustomerHandler(svc service.CustomerService) {
	customerService = svc
}

func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)
	filter := catalogFilter(c, log)
	log.Info("Listing customers", zap.String("search", filter.Search))

	customers, err := customerService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err, "Customer")
	}

	return c.JSON(http.StatusOK, customers)
}

func GetCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Customer")
	}

	customer, err := customerService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Customer")
	}

	return c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new customer")

	var req service.CustomerInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Customer")
	}

	customer, err := customerService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, log, err, "Customer")
	}

	log.Info("Customer created successfully", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Customer")
	}
	log.Info("Updating customer", zap.Uint("customer_id", id))

	var req service.CustomerInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Customer")
	}

	customer, err := customerService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Customer")
	}

	log.Info("Customer updated successfully", zap.Uint("customer_id", id))
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer refuses customers that still have orders
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Customer")
	}
	log.Info("Deleting customer", zap.Uint("customer_id", id))

	if err := customerService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err, "Customer")
	}

	log.Info("Customer deleted successfully", zap.Uint("customer_id", id))
	return c.NoContent(http.StatusNoContent)
}
