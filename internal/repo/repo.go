package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when the conditional stock decrement in
// the order transaction matches no row: either the menu vanished or another
// order drained the stock first.
var ErrInsufficientStock = errors.New("insufficient stock")

// GormRepo owns all database access. It is constructed once in cmd/server
// and injected into the service layer; there is no package-global handle.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
