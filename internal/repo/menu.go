package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
	"github.com/hotbrew/cafe-order/internal/transport"
)

func (r *GormRepo) ListMenus(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id ASC") }).
		Order("id ASC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *GormRepo) GetMenu(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id ASC") }).
		First(&menu, id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetMenusByIDs loads the referenced menus in one query, keyed by id.
func (r *GormRepo) GetMenusByIDs(ctx context.Context, ids []uint) (map[uint]models.Menu, error) {
	var menus []models.Menu
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&menus).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}
	return byID, nil
}

func (r *GormRepo) SetMenuStock(ctx context.Context, id uint, stock int) error {
	return r.DB.WithContext(ctx).
		Model(&models.Menu{}).
		Where("id = ?", id).
		Update("stock", stock).Error
}

func (r *GormRepo) CreateMenu(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Create(menu).Error
}

func (r *GormRepo) SaveMenu(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Save(menu).Error
}

// DeleteMenu removes a menu and its options. Menus referenced by order line
// items are kept so unit-price history stays intact; the caller gets the
// reference count to decide.
func (r *GormRepo) DeleteMenu(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Menu{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CountOrderItemsForMenu(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("menu_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) Inventory(ctx context.Context) ([]transport.InventoryItem, error) {
	var rows []transport.InventoryItem
	err := r.DB.WithContext(ctx).
		Model(&models.Menu{}).
		Select("id AS menu_id, name AS menu_name, stock").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOptionsByIDs loads the requested options in one query, keyed by id.
func (r *GormRepo) GetOptionsByIDs(ctx context.Context, ids []uint) (map[uint]models.Option, error) {
	if len(ids) == 0 {
		return map[uint]models.Option{}, nil
	}
	var opts []models.Option
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&opts).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Option, len(opts))
	for _, o := range opts {
		byID[o.ID] = o
	}
	return byID, nil
}
