package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotbrew/cafe-order/internal/models"
	"github.com/hotbrew/cafe-order/internal/transport"
)

func TestPlaceOrder_DecrementsStockAndSnapshotsPrice(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Americano", 4000, 5)

	order, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{
			{MenuID: menu.ID, Quantity: 2, UnitPrice: 4000},
		},
		TotalPrice: 8000,
	})
	require.NoError(t, err)

	assert.Equal(t, "received", order.Status)
	assert.EqualValues(t, 8000, order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, menu.ID, order.Items[0].MenuID)
	assert.Equal(t, "Americano", order.Items[0].MenuName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.EqualValues(t, 4000, order.Items[0].UnitPrice)

	var reloaded models.Menu
	require.NoError(t, r.DB.First(&reloaded, menu.ID).Error)
	assert.Equal(t, 3, reloaded.Stock)

	// Later price changes must not touch the recorded unit price.
	require.NoError(t, r.DB.Model(&models.Menu{}).Where("id = ?", menu.ID).Update("price", 9999).Error)
	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4000, got.Items[0].UnitPrice)
}

func TestPlaceOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	cheap := createMenu(t, r, "Americano", 4000, 10)
	scarce := createMenu(t, r, "Cafe Latte", 4500, 3)

	_, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{
			{MenuID: cheap.ID, Quantity: 1, UnitPrice: 4000},
			{MenuID: scarce.ID, Quantity: 5, UnitPrice: 4500},
		},
		TotalPrice: 26500,
	})
	require.ErrorIs(t, err, ErrValidation)

	var menus []models.Menu
	require.NoError(t, r.DB.Order("id ASC").Find(&menus).Error)
	assert.Equal(t, 10, menus[0].Stock)
	assert.Equal(t, 3, menus[1].Stock)

	var orderCount, itemCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestPlaceOrder_RejectsBadRequests(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Americano", 4000, 5)

	cases := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{"empty cart", transport.CreateOrderRequest{TotalPrice: 4000}},
		{"missing total", transport.CreateOrderRequest{
			Items: []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
		}},
		{"negative total", transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
			TotalPrice: -1,
		}},
		{"zero quantity", transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 0, UnitPrice: 4000}},
			TotalPrice: 4000,
		}},
		{"unknown menu", transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: 999, Quantity: 1, UnitPrice: 4000}},
			TotalPrice: 4000,
		}},
		{"unknown option", transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, OptionIDs: []uint{777}, UnitPrice: 4000}},
			TotalPrice: 4000,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	var orderCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestPlaceOrder_RecordsOptionLinks(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Cafe Latte", 4500, 5,
		models.Option{Name: "Extra Shot", Price: 500},
		models.Option{Name: "Oat Milk", Price: 700},
	)

	order, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{
			{
				MenuID:    menu.ID,
				Quantity:  1,
				OptionIDs: []uint{menu.Options[1].ID, menu.Options[0].ID},
				UnitPrice: 5700,
			},
		},
		TotalPrice: 5700,
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	require.Len(t, order.Items[0].Options, 2)
	// Options come back ordered by ascending id regardless of request order.
	assert.Equal(t, "Extra Shot", order.Items[0].Options[0].Name)
	assert.Equal(t, "Oat Milk", order.Items[0].Options[1].Name)

	var linkCount int64
	require.NoError(t, r.DB.Model(&models.OrderItemOption{}).Count(&linkCount).Error)
	assert.EqualValues(t, 2, linkCount)
}

func TestPlaceOrder_SequentialDrainOversellsNothing(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Cappuccino", 4500, 1)

	req := transport.CreateOrderRequest{
		Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4500}},
		TotalPrice: 4500,
	}

	_, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)

	var reloaded models.Menu
	require.NoError(t, r.DB.First(&reloaded, menu.ID).Error)
	assert.Zero(t, reloaded.Stock)
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Americano", 4000, 5)

	order, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
		Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
		TotalPrice: 4000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), order.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestUpdateStatus_RejectsInvalidTransitions(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Americano", 4000, 10)

	place := func() uint {
		order, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
			TotalPrice: 4000,
		})
		require.NoError(t, err)
		return order.ID
	}

	t.Run("skip to completed", func(t *testing.T) {
		id := place()
		_, err := svc.UpdateStatus(context.Background(), id, "completed")
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "received")
		assert.Contains(t, err.Error(), "completed")

		got, err := svc.GetOrder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "received", got.Status)
	})

	t.Run("reverse", func(t *testing.T) {
		id := place()
		_, err := svc.UpdateStatus(context.Background(), id, "in_progress")
		require.NoError(t, err)
		_, err = svc.UpdateStatus(context.Background(), id, "received")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("terminal state", func(t *testing.T) {
		id := place()
		_, err := svc.UpdateStatus(context.Background(), id, "in_progress")
		require.NoError(t, err)
		_, err = svc.UpdateStatus(context.Background(), id, "completed")
		require.NoError(t, err)
		_, err = svc.UpdateStatus(context.Background(), id, "in_progress")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown status value", func(t *testing.T) {
		id := place()
		_, err := svc.UpdateStatus(context.Background(), id, "cancelled")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), 9999, "in_progress")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListOrders_PaginationAndFilter(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	menu := createMenu(t, r, "Americano", 4000, 100)

	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := svc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
			TotalPrice: 4000,
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}
	_, err := svc.UpdateStatus(context.Background(), ids[0], "in_progress")
	require.NoError(t, err)

	page, err := svc.ListOrders(context.Background(), "", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Orders, 2)
	assert.Equal(t, 2, page.Limit)
	for _, o := range page.Orders {
		require.Len(t, o.Items, 1)
	}

	received, err := svc.ListOrders(context.Background(), "received", 100, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, received.Total)
	for _, o := range received.Orders {
		assert.Equal(t, "received", o.Status)
	}

	_, err = svc.ListOrders(context.Background(), "shipped", 100, 0)
	require.ErrorIs(t, err, ErrValidation)
}
