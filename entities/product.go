package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Category    string          `json:"category"` // Assados, Acompanhamentos, Bebidas, Combos, Sobremesas, ...
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`

	Ingredients []*ProductIngredient `gorm:"foreignKey:ProductID" json:"ingredients,omitempty"`
	Timestamp
}

// ProductIngredient is one recipe line: how much of an inventory item a
// single serving of the product consumes. Purely advisory, used for the
// availability badge; placing an order never deducts stock.
type ProductIngredient struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	Quantity        decimal.Decimal `gorm:"type:decimal(10,3)" json:"quantity"`
	Unit            string          `json:"unit"`

	Product       *Product       `gorm:"foreignKey:ProductID"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
	Timestamp
}
