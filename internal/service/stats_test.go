package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotbrew/cafe-order/internal/transport"
)

func TestOrderStats(t *testing.T) {
	r := newTestRepo(t)
	orderSvc := &OrderService{Repo: r}
	statsSvc := &StatsService{Repo: r}

	empty, err := statsSvc.OrderStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)

	menu := createMenu(t, r, "Americano", 4000, 100)
	place := func() uint {
		order, err := orderSvc.PlaceOrder(context.Background(), transport.CreateOrderRequest{
			Items:      []transport.CreateOrderItem{{MenuID: menu.ID, Quantity: 1, UnitPrice: 4000}},
			TotalPrice: 4000,
		})
		require.NoError(t, err)
		return order.ID
	}

	ids := []uint{place(), place(), place(), place()}
	for _, id := range ids[:2] {
		_, err := orderSvc.UpdateStatus(context.Background(), id, "in_progress")
		require.NoError(t, err)
	}
	_, err = orderSvc.UpdateStatus(context.Background(), ids[0], "completed")
	require.NoError(t, err)

	stats, err := statsSvc.OrderStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalOrders)
	assert.EqualValues(t, 2, stats.ReceivedOrders)
	assert.EqualValues(t, 1, stats.InProgressOrders)
	assert.EqualValues(t, 1, stats.CompletedOrders)
}

func TestInventory(t *testing.T) {
	r := newTestRepo(t)
	svc := &InventoryService{Repo: r}

	empty, err := svc.Inventory(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	createMenu(t, r, "Americano", 4000, 5)
	createMenu(t, r, "Cafe Latte", 4500, 0)

	rows, err := svc.Inventory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Americano", rows[0].MenuName)
	assert.Equal(t, 5, rows[0].Stock)
	assert.Equal(t, "Cafe Latte", rows[1].MenuName)
	assert.Zero(t, rows[1].Stock)
}
