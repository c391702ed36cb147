package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `gorm:"uniqueIndex:idx_inventory_name_lower,expression:lower(name)" json:"name"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `gorm:"type:decimal(12,3)" json:"quantity"`
	Unit     string          `json:"unit"`

	Entries []*InventoryEntry `gorm:"foreignKey:InventoryItemID" json:"history,omitempty"`
	Timestamp
}

// InventoryEntry is one row of the append-only stock ledger. Entries are
// never rewritten or compacted; the item's Quantity column is adjusted in
// the same transaction that appends the entry.
type InventoryEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	Date            time.Time       `gorm:"type:timestamp" json:"date"`
	Qty             decimal.Decimal `gorm:"type:decimal(12,3)" json:"qty"`
	Cost            decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost"`
	Unit            string          `json:"unit"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
	Timestamp
}
