package inventory

import (
	"context"

	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		GetItemByName(ctx context.Context, name string) (*entities.InventoryItem, error)
		GetItems(ctx context.Context) ([]*entities.InventoryItem, error)
		CreateItem(ctx context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry) error
		AppendEntry(ctx context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry, delta decimal.Decimal) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByName matches case-insensitively; "Farinha" and "farinha" are the
// same ledger.
func (r *inventoryRepository) GetItemByName(ctx context.Context, name string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) GetItems(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("date asc") }).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		entry.InventoryItemID = item.ID
		return tx.Create(entry).Error
	})
}

// AppendEntry adds a ledger row and adjusts the running quantity in the same
// transaction, so the counter cannot drift from the sum of its entries.
func (r *inventoryRepository) AppendEntry(ctx context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry.InventoryItemID = item.ID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&entities.InventoryItem{}).
			Where("id = ?", item.ID).
			Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	})
}
