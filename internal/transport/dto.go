package transport

import "time"

type CreateOrderItem struct {
	MenuID    uint   `json:"menu_id"`
	Quantity  int    `json:"quantity"`
	OptionIDs []uint `json:"option_ids"`
	UnitPrice int64  `json:"unit_price"`
}

type CreateOrderRequest struct {
	Items      []CreateOrderItem `json:"items"`
	TotalPrice int64             `json:"total_price"`
}

type StockChangeRequest struct {
	Change *int `json:"change"`
}

type StatusChangeRequest struct {
	Status string `json:"status"`
}

type MenuOption struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MenuResponse is the wire shape for a menu. Stock is only present when the
// caller asked for it (include_stock or the detail route).
type MenuResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       int64        `json:"price"`
	ImageURL    string       `json:"imageUrl"`
	Options     []MenuOption `json:"options"`
	Stock       *int         `json:"stock,omitempty"`
}

type OrderItemOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OrderItemResponse struct {
	MenuID    uint              `json:"menu_id"`
	MenuName  string            `json:"menu_name"`
	Quantity  int               `json:"quantity"`
	Options   []OrderItemOption `json:"options"`
	UnitPrice int64             `json:"unit_price"`
}

type OrderResponse struct {
	ID         uint                `json:"id"`
	OrderDate  time.Time           `json:"order_date"`
	Status     string              `json:"status"`
	TotalPrice int64               `json:"total_price"`
	Items      []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type InventoryItem struct {
	MenuID   uint   `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Stock    int    `json:"stock"`
}

type StockResponse struct {
	MenuID   uint   `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Stock    int    `json:"stock"`
}

type StatsResponse struct {
	TotalOrders      int64 `json:"total_orders"`
	ReceivedOrders   int64 `json:"received_orders"`
	InProgressOrders int64 `json:"in_progress_orders"`
	CompletedOrders  int64 `json:"completed_orders"`
}

type CreateMenuRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Stock       int    `json:"stock"`
}

type PatchMenuRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"imageUrl"`
}
