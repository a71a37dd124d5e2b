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

type MenuService struct {
	Repo *repo.GormRepo
}

func menuResponse(m *models.Menu, includeStock bool) transport.MenuResponse {
	opts := make([]transport.MenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		opts = append(opts, transport.MenuOption{ID: o.ID, Name: o.Name, Price: o.Price})
	}
	resp := transport.MenuResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Options:     opts,
	}
	if includeStock {
		stock := m.Stock
		resp.Stock = &stock
	}
	return resp
}

func (svc *MenuService) ListMenus(ctx context.Context, includeStock bool) ([]transport.MenuResponse, error) {
	menus, err := svc.Repo.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MenuResponse, 0, len(menus))
	for i := range menus {
		out = append(out, menuResponse(&menus[i], includeStock))
	}
	return out, nil
}

// GetMenu returns one menu with its options; the detail view always carries
// stock.
func (svc *MenuService) GetMenu(ctx context.Context, id uint) (*transport.MenuResponse, error) {
	menu, err := svc.Repo.GetMenu(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu %d", ErrNotFound, id)
		}
		return nil, err
	}
	resp := menuResponse(menu, true)
	return &resp, nil
}

// AdjustStock applies a signed delta, floored at zero. Decrementing a menu
// that is already out of stock is an explicit error rather than a silent
// no-op.
func (svc *MenuService) AdjustStock(ctx context.Context, id uint, change int) (*transport.StockResponse, error) {
	menu, err := svc.Repo.GetMenu(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu %d", ErrNotFound, id)
		}
		return nil, err
	}

	if menu.Stock == 0 && change < 0 {
		return nil, fmt.Errorf("%w: stock for menu %d is already zero", ErrValidation, id)
	}

	newStock := menu.Stock + change
	if newStock < 0 {
		newStock = 0
	}
	if err := svc.Repo.SetMenuStock(ctx, id, newStock); err != nil {
		return nil, err
	}

	return &transport.StockResponse{MenuID: menu.ID, MenuName: menu.Name, Stock: newStock}, nil
}

func (svc *MenuService) CreateMenu(ctx context.Context, req transport.CreateMenuRequest) (*models.Menu, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	menu := models.Menu{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if err := svc.Repo.CreateMenu(ctx, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (svc *MenuService) PatchMenu(ctx context.Context, id uint, req transport.PatchMenuRequest) (*models.Menu, error) {
	menu, err := svc.Repo.GetMenu(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		menu.Price = *req.Price
	}
	if req.ImageURL != nil {
		menu.ImageURL = *req.ImageURL
	}

	if err := svc.Repo.SaveMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu refuses to remove a menu that historical order items still
// reference; the unit-price snapshots would lose their join target.
func (svc *MenuService) DeleteMenu(ctx context.Context, id uint) error {
	refs, err := svc.Repo.CountOrderItemsForMenu(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: menu %d is referenced by %d order items", ErrConflict, id, refs)
	}

	if err := svc.Repo.DeleteMenu(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: menu %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
