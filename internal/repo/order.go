package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
	"github.com/hotbrew/cafe-order/internal/transport"
)

// OrderLine is one validated cart entry handed to PlaceOrder.
type OrderLine struct {
	MenuID    uint
	Quantity  int
	UnitPrice int64
	OptionIDs []uint
}

// PlaceOrder runs the whole placement inside one transaction: create the
// order, its line items and option links, and decrement stock. The decrement
// is conditional on `stock >= quantity`, so two concurrent placements against
// the same menu serialize through the row update and the loser rolls back
// with ErrInsufficientStock. Nothing is written when any step fails.
func (r *GormRepo) PlaceOrder(ctx context.Context, totalPrice int64, lines []OrderLine) (*models.Order, error) {
	order := models.Order{
		OrderDate:  time.Now(),
		Status:     models.StatusReceived,
		TotalPrice: totalPrice,
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			res := tx.Model(&models.Menu{}).
				Where("id = ? AND stock >= ?", line.MenuID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    line.MenuID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			for _, optID := range line.OptionIDs {
				link := models.OrderItemOption{OrderItemID: item.ID, OptionID: optID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns one page of orders, newest first, plus the unpaged total.
func (r *GormRepo) ListOrders(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Order("order_date DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// itemRow is the denormalized shape of the order_items/menus join.
type itemRow struct {
	ID        uint
	OrderID   uint
	MenuID    uint
	MenuName  string
	Quantity  int
	UnitPrice int64
}

type optionRow struct {
	OrderItemID uint
	ID          uint
	Name        string
}

// LoadOrderItems assembles the item/option trees for a set of orders with two
// IN-queries instead of per-row round trips. Items and options come back
// ordered by ascending id.
func (r *GormRepo) LoadOrderItems(ctx context.Context, orderIDs []uint) (map[uint][]transport.OrderItemResponse, error) {
	result := make(map[uint][]transport.OrderItemResponse, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	var items []itemRow
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.menu_id, menus.name AS menu_name, order_items.quantity, order_items.unit_price").
		Joins("JOIN menus ON menus.id = order_items.menu_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	optionsByItem := make(map[uint][]transport.OrderItemOption)
	if len(itemIDs) > 0 {
		var opts []optionRow
		err = r.DB.WithContext(ctx).
			Table("order_item_options").
			Select("order_item_options.order_item_id, options.id, options.name").
			Joins("JOIN options ON options.id = order_item_options.option_id").
			Where("order_item_options.order_item_id IN ?", itemIDs).
			Order("options.id ASC").
			Scan(&opts).Error
		if err != nil {
			return nil, err
		}
		for _, o := range opts {
			optionsByItem[o.OrderItemID] = append(optionsByItem[o.OrderItemID], transport.OrderItemOption{ID: o.ID, Name: o.Name})
		}
	}

	for _, it := range items {
		opts := optionsByItem[it.ID]
		if opts == nil {
			opts = []transport.OrderItemOption{}
		}
		result[it.OrderID] = append(result[it.OrderID], transport.OrderItemResponse{
			MenuID:    it.MenuID,
			MenuName:  it.MenuName,
			Quantity:  it.Quantity,
			Options:   opts,
			UnitPrice: it.UnitPrice,
		})
	}
	return result, nil
}

// CountByStatus computes all four counters in a single aggregate query.
func (r *GormRepo) CountByStatus(ctx context.Context) (*transport.StatsResponse, error) {
	var stats transport.StatsResponse
	err := r.DB.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                          AS total_orders,
			COUNT(*) FILTER (WHERE status = 'received')       AS received_orders,
			COUNT(*) FILTER (WHERE status = 'in_progress')    AS in_progress_orders,
			COUNT(*) FILTER (WHERE status = 'completed')      AS completed_orders
		FROM orders`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
