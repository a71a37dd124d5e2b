package service

import (
	"context"

	"github.com/hotbrew/cafe-order/internal/repo"
	"github.com/hotbrew/cafe-order/internal/transport"
)

type StatsService struct {
	Repo *repo.GormRepo
}

func (svc *StatsService) OrderStats(ctx context.Context) (*transport.StatsResponse, error) {
	return svc.Repo.CountByStatus(ctx)
}
