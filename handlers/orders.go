package handlers

import (
	"net/http"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/services"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder - POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req services.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request format.")
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrders - GET /orders?page=&limit=&overview=&status=
func (h *OrderHandler) GetOrders(c echo.Context) error {
	var q services.OrderListQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		Bool("overview", &q.Overview).
		String("status", &q.Status).
		BindError()
	if err != nil {
		return apperr.Validation("Invalid pagination parameters.")
	}

	page, err := h.orders.ListOrders(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetOrder - GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// GetOrderStats - GET /orders/stats?from=&to=&status=
func (h *OrderHandler) GetOrderStats(c echo.Context) error {
	q := services.StatsQuery{
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
		Status: c.QueryParam("status"),
	}

	stats, err := h.orders.Stats(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateOrderStatus - PATCH /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request format.")
	}

	order, err := h.orders.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder - DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id := c.Param("id")
	if err := h.orders.DeleteOrder(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":        "Order deleted successfully.",
		"deletedOrderId": id,
	})
}
