package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotbrew/cafe-order/internal/logging"
	"github.com/hotbrew/cafe-order/internal/service"
)

type InventoryHTTP struct {
	Svc *service.InventoryService
}

func (h *InventoryHTTP) GetInventory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.get_inventory")

	rows, err := h.Svc.Inventory(ctx)
	if err != nil {
		return serviceError(l, "get_inventory_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"inventory": rows})
}
