package config

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
)

// updatedAtFunction and the per-table triggers keep updated_at maintained by
// the database rather than the application, so raw SQL writes stay honest.
const updatedAtFunction = `
CREATE OR REPLACE FUNCTION update_updated_at_column()
RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = CURRENT_TIMESTAMP;
    RETURN NEW;
END;
$$ language 'plpgsql';
`

var triggeredTables = []string{"menus", "options", "orders", "order_items", "users"}

// Migrate creates the schema, installs the updated_at triggers and seeds the
// menu on first run. Triggers are Postgres-only and skipped on other dialects
// (the test suite runs on SQLite).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Option{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := installTriggers(db); err != nil {
			return fmt.Errorf("install triggers: %w", err)
		}
	}

	return seedMenus(db)
}

func installTriggers(db *gorm.DB) error {
	if err := db.Exec(updatedAtFunction).Error; err != nil {
		return err
	}
	for _, table := range triggeredTables {
		stmt := fmt.Sprintf(`
			DROP TRIGGER IF EXISTS update_%[1]s_updated_at ON %[1]s;
			CREATE TRIGGER update_%[1]s_updated_at
			BEFORE UPDATE ON %[1]s
			FOR EACH ROW EXECUTE FUNCTION update_updated_at_column();`, table)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedMenus inserts a starter menu so a fresh deployment has something to
// sell. It only runs against an empty menus table.
func seedMenus(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menus := []models.Menu{
		{
			Name:        "Americano",
			Description: "Espresso with hot water",
			Price:       4000,
			ImageURL:    "/images/americano.jpg",
			Stock:       50,
			Options: []models.Option{
				{Name: "Extra Shot", Price: 500},
				{Name: "Decaf", Price: 0},
			},
		},
		{
			Name:        "Cafe Latte",
			Description: "Espresso with steamed milk",
			Price:       4500,
			ImageURL:    "/images/latte.jpg",
			Stock:       50,
			Options: []models.Option{
				{Name: "Extra Shot", Price: 500},
				{Name: "Oat Milk", Price: 700},
			},
		},
		{
			Name:        "Cappuccino",
			Description: "Espresso with steamed milk foam",
			Price:       4500,
			ImageURL:    "/images/cappuccino.jpg",
			Stock:       30,
			Options: []models.Option{
				{Name: "Extra Shot", Price: 500},
				{Name: "Cinnamon", Price: 300},
			},
		},
	}
	return db.Create(&menus).Error
}
