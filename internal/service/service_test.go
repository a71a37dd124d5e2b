package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
	"github.com/hotbrew/cafe-order/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Option{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return repo.New(db)
}

func createMenu(t *testing.T, r *repo.GormRepo, name string, price int64, stock int, options ...models.Option) models.Menu {
	t.Helper()
	menu := models.Menu{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Stock:       stock,
		Options:     options,
	}
	require.NoError(t, r.DB.Create(&menu).Error)
	return menu
}
