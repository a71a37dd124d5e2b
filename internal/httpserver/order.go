package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotbrew/cafe-order/internal/events"
	"github.com/hotbrew/cafe-order/internal/logging"
	"github.com/hotbrew/cafe-order/internal/service"
	"github.com/hotbrew/cafe-order/internal/transport"
	"github.com/hotbrew/cafe-order/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Stats    *service.StatsService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrders, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "error", err)
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		return serviceError(l, "create_order_failed", err)
	}

	h.publish(c, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	status := c.QueryParam("status")
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit)
	offset := util.ParseIntDefault(c.QueryParam("offset"), 0)

	resp, err := h.Svc.ListOrders(ctx, status, limit, offset)
	if err != nil {
		return serviceError(l, "get_orders_failed", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_order_failed", "status", 400, "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, uint(id))
	if err != nil {
		return serviceError(l, "get_order_failed", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.StatusChangeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, uint(id), req.Status)
	if err != nil {
		return serviceError(l, "update_status_failed", err)
	}

	h.publish(c, strconv.Itoa(id), map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   order.Status,
	})

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_stats")

	stats, err := h.Stats.OrderStats(ctx)
	if err != nil {
		return serviceError(l, "get_stats_failed", err)
	}
	return c.JSON(http.StatusOK, stats)
}
