package service

import (
	"context"

	"github.com/hotbrew/cafe-order/internal/repo"
	"github.com/hotbrew/cafe-order/internal/transport"
)

type InventoryService struct {
	Repo *repo.GormRepo
}

func (svc *InventoryService) Inventory(ctx context.Context) ([]transport.InventoryItem, error) {
	rows, err := svc.Repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []transport.InventoryItem{}
	}
	return rows, nil
}
