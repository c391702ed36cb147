package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeInventoryRepository struct {
	items   map[string]*entities.InventoryItem
	entries map[string][]*entities.InventoryEntry
}

func newFakeInventoryRepository() *fakeInventoryRepository {
	return &fakeInventoryRepository{
		items:   map[string]*entities.InventoryItem{},
		entries: map[string][]*entities.InventoryEntry{},
	}
}

// copyItem mirrors the real repository, which scans every row into a fresh
// struct: callers mutating a returned item must never reach the stored state.
func copyItem(item *entities.InventoryItem) *entities.InventoryItem {
	c := *item
	return &c
}

func (f *fakeInventoryRepository) GetItemByID(_ context.Context, id string) (*entities.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyItem(item), nil
}

func (f *fakeInventoryRepository) GetItemByName(_ context.Context, name string) (*entities.InventoryItem, error) {
	for _, item := range f.items {
		if strings.EqualFold(item.Name, name) {
			return copyItem(item), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInventoryRepository) GetItems(_ context.Context) ([]*entities.InventoryItem, error) {
	var out []*entities.InventoryItem
	for _, item := range f.items {
		c := copyItem(item)
		c.Entries = f.entries[c.ID.String()]
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeInventoryRepository) CreateItem(_ context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry) error {
	id := item.ID.String()
	f.items[id] = item
	entry.InventoryItemID = item.ID
	f.entries[id] = append(f.entries[id], entry)
	return nil
}

func (f *fakeInventoryRepository) AppendEntry(_ context.Context, item *entities.InventoryItem, entry *entities.InventoryEntry, delta decimal.Decimal) error {
	id := item.ID.String()
	entry.InventoryItemID = item.ID
	f.entries[id] = append(f.entries[id], entry)
	f.items[id].Quantity = f.items[id].Quantity.Add(delta)
	return nil
}

func seedItem(repo *fakeInventoryRepository, name string, qty float64) uuid.UUID {
	id := uuid.New()
	repo.items[id.String()] = &entities.InventoryItem{
		ID:       id,
		SKU:      "TEST1234",
		Name:     name,
		Quantity: decimal.NewFromFloat(qty),
		Unit:     "un",
	}
	return id
}

func TestRegisterEntryCreatesNewItem(t *testing.T) {
	repo := newFakeInventoryRepository()
	svc := NewInventoryService(repo)

	res, err := svc.RegisterEntry(context.Background(), domain.StockEntryRequest{
		Name:     "Farinha de Mandioca",
		Category: "Secos",
		Quantity: "10",
		Unit:     "kg",
		Cost:     "89.90",
	})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, res.SKU, 8)

	item, err := repo.GetItemByName(context.Background(), "farinha de mandioca")
	require.NoError(t, err)
	require.Len(t, repo.entries[item.ID.String()], 1)
}

func TestRegisterEntryMergesByNameCaseInsensitive(t *testing.T) {
	repo := newFakeInventoryRepository()
	svc := NewInventoryService(repo)
	ctx := context.Background()

	first, err := svc.RegisterEntry(ctx, domain.StockEntryRequest{Name: "Frango", Quantity: "4", Unit: "un"})
	require.NoError(t, err)

	second, err := svc.RegisterEntry(ctx, domain.StockEntryRequest{Name: "FRANGO", Quantity: "6", Unit: "un"})
	require.NoError(t, err)

	assert.Equal(t, first.ItemID, second.ItemID)
	assert.True(t, second.Quantity.Equal(decimal.NewFromInt(10)), "got %s", second.Quantity)

	// the stored counter was bumped exactly once per entry.
	stored, err := repo.GetItemByName(ctx, "frango")
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(10)), "got %s", stored.Quantity)

	// ledger keeps both entries; quantity equals their sum.
	entries := repo.entries[first.ItemID]
	require.Len(t, entries, 2)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Qty)
	}
	assert.True(t, sum.Equal(second.Quantity))
}

func TestRegisterEntryRejectsBadQuantity(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepository())
	_, err := svc.RegisterEntry(context.Background(), domain.StockEntryRequest{Name: "Sal", Quantity: "muito", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidEntryQuantity)
}

func recipeLine(itemID uuid.UUID, required float64) *entities.ProductIngredient {
	return &entities.ProductIngredient{
		InventoryItemID: itemID,
		Quantity:        decimal.NewFromFloat(required),
	}
}

func TestAvailabilityDerivation(t *testing.T) {
	repo := newFakeInventoryRepository()
	svc := NewInventoryService(repo)
	ctx := context.Background()

	// No recipe: always available.
	status, err := svc.Availability(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, StockOK, status)

	// Requires 2, stock 1: critical.
	low := seedItem(repo, "Frango", 1)
	status, err = svc.Availability(ctx, []*entities.ProductIngredient{recipeLine(low, 2)})
	require.NoError(t, err)
	assert.Equal(t, StockCritical, status)

	// Requires 2, stock 9 (< 2*5): warning.
	mid := seedItem(repo, "Farofa", 9)
	status, err = svc.Availability(ctx, []*entities.ProductIngredient{recipeLine(mid, 2)})
	require.NoError(t, err)
	assert.Equal(t, StockWarning, status)

	// Requires 2, stock 10: ok.
	full := seedItem(repo, "Carvão", 10)
	status, err = svc.Availability(ctx, []*entities.ProductIngredient{recipeLine(full, 2)})
	require.NoError(t, err)
	assert.Equal(t, StockOK, status)

	// Unknown ingredient decides critical even if others are fine.
	status, err = svc.Availability(ctx, []*entities.ProductIngredient{
		recipeLine(full, 2),
		recipeLine(uuid.New(), 1),
	})
	require.NoError(t, err)
	assert.Equal(t, StockCritical, status)

	// One warning ingredient downgrades an otherwise ok recipe.
	status, err = svc.Availability(ctx, []*entities.ProductIngredient{
		recipeLine(full, 2),
		recipeLine(mid, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, StockWarning, status)
}
