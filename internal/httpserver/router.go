package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/hotbrew/cafe-order/internal/middleware/auth"
)

type Deps struct {
	DB        *gorm.DB
	Menu      *MenuHTTP
	Order     *OrderHTTP
	Inventory *InventoryHTTP
	Auth      *AuthHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	menus := api.Group("/menus")
	menus.GET("", d.Menu.GetMenus)
	menus.GET("/search", d.Menu.SearchMenus)
	menus.GET("/:id", d.Menu.GetMenu)
	menus.PATCH("/:id/stock", d.Menu.PatchStock)

	adminMenus := menus.Group("", authmw.RequireAdmin(d.JWTSecret))
	adminMenus.POST("", d.Menu.CreateMenu)
	adminMenus.PATCH("/:id", d.Menu.PatchMenu)
	adminMenus.DELETE("/:id", d.Menu.DeleteMenu)

	orders := api.Group("/orders")
	orders.POST("", d.Order.CreateOrder)
	orders.GET("", d.Order.GetOrders)
	orders.GET("/stats", d.Order.GetStats)
	orders.GET("/:id", d.Order.GetOrder)
	orders.PATCH("/:id/status", d.Order.UpdateStatus)

	api.GET("/inventory", d.Inventory.GetInventory)
}
