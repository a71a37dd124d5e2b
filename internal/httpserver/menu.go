package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/hotbrew/cafe-order/internal/events"
	"github.com/hotbrew/cafe-order/internal/logging"
	"github.com/hotbrew/cafe-order/internal/search"
	"github.com/hotbrew/cafe-order/internal/service"
	"github.com/hotbrew/cafe-order/internal/transport"
	"github.com/hotbrew/cafe-order/internal/util"
)

type MenuHTTP struct {
	Svc      *service.MenuService
	Producer *events.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *MenuHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicInventory, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "error", err)
	}
}

func (h *MenuHTTP) GetMenus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_menus")

	includeStock := c.QueryParam("include_stock") == "true"

	menus, err := h.Svc.ListMenus(ctx, includeStock)
	if err != nil {
		return serviceError(l, "get_menus_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"menus": menus})
}

func (h *MenuHTTP) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_menu")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_menu_failed", "status", 400, "reason", "invalid menu id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	menu, err := h.Svc.GetMenu(ctx, uint(id))
	if err != nil {
		return serviceError(l, "get_menu_failed", err)
	}
	return c.JSON(http.StatusOK, menu)
}

func (h *MenuHTTP) PatchStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.patch_stock")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("patch_stock_failed", "status", 400, "reason", "invalid menu id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	var req transport.StockChangeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_stock_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Change == nil {
		l.Warn("patch_stock_failed", "status", 400, "reason", "change required")
		return echo.NewHTTPError(http.StatusBadRequest, "a numeric change is required")
	}

	resp, err := h.Svc.AdjustStock(ctx, uint(id), *req.Change)
	if err != nil {
		return serviceError(l, "patch_stock_failed", err)
	}

	h.publish(c, strconv.Itoa(id), map[string]any{
		"type":    "stock_adjusted",
		"menu_id": resp.MenuID,
		"change":  *req.Change,
		"stock":   resp.Stock,
	})

	l.Info("patch_stock_success", "menu_id", resp.MenuID, "stock", resp.Stock)
	return c.JSON(http.StatusOK, resp)
}

func (h *MenuHTTP) CreateMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create_menu")

	var req transport.CreateMenuRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_menu_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	menu, err := h.Svc.CreateMenu(ctx, req)
	if err != nil {
		return serviceError(l, "create_menu_failed", err)
	}

	h.indexMenu(c, menu.ID)
	h.publish(c, strconv.FormatUint(uint64(menu.ID), 10), map[string]any{
		"type":    "menu_created",
		"menu_id": menu.ID,
		"name":    menu.Name,
	})

	l.Info("create_menu_success", "menu_id", menu.ID)
	return c.JSON(http.StatusCreated, menu)
}

func (h *MenuHTTP) PatchMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.patch_menu")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("patch_menu_failed", "status", 400, "reason", "invalid menu id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	var req transport.PatchMenuRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_menu_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	menu, err := h.Svc.PatchMenu(ctx, uint(id), req)
	if err != nil {
		return serviceError(l, "patch_menu_failed", err)
	}

	h.indexMenu(c, menu.ID)
	h.publish(c, strconv.Itoa(id), map[string]any{
		"type":    "menu_updated",
		"menu_id": menu.ID,
	})

	l.Info("patch_menu_success", "menu_id", menu.ID)
	return c.JSON(http.StatusOK, menu)
}

func (h *MenuHTTP) DeleteMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete_menu")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_menu_failed", "status", 400, "reason", "invalid menu id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	if err := h.Svc.DeleteMenu(ctx, uint(id)); err != nil {
		return serviceError(l, "delete_menu_failed", err)
	}

	if h.ES != nil {
		if err := search.DeleteMenu(ctx, h.ES, h.ESIndex, uint(id)); err != nil {
			l.Warn("delete_menu_index_failed", "menu_id", id, "error", err)
		}
	}

	l.Info("delete_menu_success", "menu_id", id)
	return c.NoContent(http.StatusNoContent)
}

// SearchMenus is backed by Elasticsearch and only available when ES_URL is
// configured.
func (h *MenuHTTP) SearchMenus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search_menus")

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_menus_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, menus, err := search.Search(ctx, h.ES, h.ESIndex, q, from, size)
	if err != nil {
		l.Error("search_menus_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "menus": menus})
}

func (h *MenuHTTP) indexMenu(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	menu, err := h.Svc.Repo.GetMenu(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Warn("index menu load failed", "menu_id", id, "error", err)
		return
	}
	if err := search.IndexMenu(ctx, h.ES, h.ESIndex, menu); err != nil {
		logging.FromContext(ctx).Warn("index menu failed", "menu_id", id, "error", err)
	}
}
