package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
	"github.com/hotbrew/cafe-order/internal/repo"
	"github.com/hotbrew/cafe-order/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// PlaceOrder validates the whole cart before any write, then hands the lines
// to the repo transaction. The claimed total_price is persisted as-is; the
// server does not recompute it from item prices (the original system trusts
// the client here and that behavior is kept).
func (svc *OrderService) PlaceOrder(ctx context.Context, req transport.CreateOrderRequest) (*transport.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order items required", ErrValidation)
	}
	if req.TotalPrice <= 0 {
		return nil, fmt.Errorf("%w: a positive total_price is required", ErrValidation)
	}

	menuIDs := make([]uint, 0, len(req.Items))
	optionIDs := make([]uint, 0)
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit_price must be >= 0", ErrValidation)
		}
		menuIDs = append(menuIDs, item.MenuID)
		optionIDs = append(optionIDs, item.OptionIDs...)
	}

	menus, err := svc.Repo.GetMenusByIDs(ctx, menuIDs)
	if err != nil {
		return nil, err
	}
	options, err := svc.Repo.GetOptionsByIDs(ctx, optionIDs)
	if err != nil {
		return nil, err
	}

	// First validation pass over every item, so the transaction's rollback
	// path is mostly a safety net against concurrent stock drain.
	lines := make([]repo.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		menu, ok := menus[item.MenuID]
		if !ok {
			return nil, fmt.Errorf("%w: menu %d does not exist", ErrValidation, item.MenuID)
		}
		if menu.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for menu %d", ErrValidation, item.MenuID)
		}
		for _, optID := range item.OptionIDs {
			if _, ok := options[optID]; !ok {
				return nil, fmt.Errorf("%w: option %d does not exist", ErrValidation, optID)
			}
		}
		lines = append(lines, repo.OrderLine{
			MenuID:    item.MenuID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			OptionIDs: item.OptionIDs,
		})
	}

	order, err := svc.Repo.PlaceOrder(ctx, req.TotalPrice, lines)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: insufficient stock", ErrValidation)
		}
		return nil, err
	}

	return svc.orderResponse(ctx, order)
}

func (svc *OrderService) GetOrder(ctx context.Context, id uint) (*transport.OrderResponse, error) {
	order, err := svc.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return svc.orderResponse(ctx, order)
}

func (svc *OrderService) ListOrders(ctx context.Context, status string, limit, offset int) (*transport.OrderListResponse, error) {
	var st models.OrderStatus
	if status != "" {
		st = models.OrderStatus(status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
		}
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := svc.Repo.ListOrders(ctx, st, limit, offset)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	itemsByOrder, err := svc.Repo.LoadOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]transport.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		if items == nil {
			items = []transport.OrderItemResponse{}
		}
		out = append(out, transport.OrderResponse{
			ID:         o.ID,
			OrderDate:  o.OrderDate,
			Status:     string(o.Status),
			TotalPrice: o.TotalPrice,
			Items:      items,
		})
	}

	return &transport.OrderListResponse{
		Orders: out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// UpdateStatus advances an order along received -> in_progress -> completed.
// Any other move is rejected with both states in the message, leaving the
// order untouched.
func (svc *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*transport.OrderResponse, error) {
	target := models.OrderStatus(status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	order, err := svc.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot change order status from %s to %s", ErrValidation, order.Status, target)
	}

	if err := svc.Repo.UpdateOrderStatus(ctx, id, target); err != nil {
		return nil, err
	}
	order.Status = target

	return svc.orderResponse(ctx, order)
}

func (svc *OrderService) orderResponse(ctx context.Context, order *models.Order) (*transport.OrderResponse, error) {
	itemsByOrder, err := svc.Repo.LoadOrderItems(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	items := itemsByOrder[order.ID]
	if items == nil {
		items = []transport.OrderItemResponse{}
	}
	return &transport.OrderResponse{
		ID:         order.ID,
		OrderDate:  order.OrderDate,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Items:      items,
	}, nil
}
