package models

import "time"

// Menu is a purchasable item. Stock is decremented by order placement and
// adjusted by admins; it never goes below zero. Prices are integer currency
// units.
type Menu struct {
	ID          uint      `gorm:"primaryKey"                      json:"id"`
	Name        string    `gorm:"type:varchar(100);not null"      json:"name"`
	Description string    `gorm:"type:text"                       json:"description"`
	Price       int64     `gorm:"not null"                        json:"price"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(255)" json:"imageUrl"`
	Stock       int       `gorm:"not null;default:0;check:stock>=0" json:"stock"`
	Options     []Option  `gorm:"foreignKey:MenuID"               json:"options"`
	CreatedAt   time.Time `gorm:"not null"                        json:"-"`
	UpdatedAt   time.Time `gorm:"not null"                        json:"-"`
}

// Option is an add-on selectable with one menu; Price is the delta added to
// the menu price.
type Option struct {
	ID        uint      `gorm:"primaryKey"                             json:"id"`
	MenuID    uint      `gorm:"not null;uniqueIndex:idx_options_menu_name" json:"menu_id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_options_menu_name" json:"name"`
	Price     int64     `gorm:"not null;default:0"                     json:"price"`
	CreatedAt time.Time `gorm:"not null"                               json:"-"`
	UpdatedAt time.Time `gorm:"not null"                               json:"-"`
}

type OrderStatus string

const (
	StatusReceived   OrderStatus = "received"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only workflow
// received -> in_progress -> completed. Completed is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusReceived:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

type Order struct {
	ID         uint        `gorm:"primaryKey"                               json:"id"`
	OrderDate  time.Time   `gorm:"column:order_date;not null"               json:"order_date"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'received'" json:"status"`
	TotalPrice int64       `gorm:"not null"                                 json:"total_price"`
	Items      []OrderItem `gorm:"foreignKey:OrderID"                       json:"items"`
	CreatedAt  time.Time   `gorm:"not null"                                 json:"-"`
	UpdatedAt  time.Time   `gorm:"not null"                                 json:"-"`
}

// OrderItem is one menu line within an order. UnitPrice is captured at
// purchase time and never follows later menu price changes.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey"         json:"id"`
	OrderID   uint      `gorm:"index;not null"     json:"order_id"`
	MenuID    uint      `gorm:"not null"           json:"menu_id"`
	Quantity  int       `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice int64     `gorm:"not null"           json:"unit_price"`
	CreatedAt time.Time `gorm:"not null"           json:"-"`
	UpdatedAt time.Time `gorm:"not null"           json:"-"`
}

// OrderItemOption links an order item to a chosen option. Pure association,
// no lifecycle of its own.
type OrderItemOption struct {
	OrderItemID uint `gorm:"primaryKey" json:"order_item_id"`
	OptionID    uint `gorm:"primaryKey" json:"option_id"`
}

// User is a staff account. Menu management routes require role "admin".
type User struct {
	ID           uint      `gorm:"primaryKey"                        json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null"                          json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	CreatedAt    time.Time `gorm:"not null"                          json:"-"`
	UpdatedAt    time.Time `gorm:"not null"                          json:"-"`
}
