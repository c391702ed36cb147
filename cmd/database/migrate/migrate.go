package migration

import (
	"fmt"
	"log"

	"github.com/familia-davanzo/assados-backend/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}, &entities.ProductIngredient{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderItem{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.InventoryItem{}, &entities.InventoryEntry{}); err != nil {
		log.Fatalf("Error migrating inventory database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
