package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock status of a product derived from its recipe. Advisory only: it gates
// nothing, it just colors the badge on the menu-management view.
const (
	StockOK       = "ok"
	StockWarning  = "warning"
	StockCritical = "critical"
)

// headroomServings is how many more servings must be coverable before an
// ingredient stops counting as low stock.
var headroomServings = decimal.NewFromInt(5)

type (
	InventoryService interface {
		RegisterEntry(ctx context.Context, req domain.StockEntryRequest) (domain.StockEntryResponse, error)
		GetInventory(ctx context.Context) ([]domain.InventoryItemResponse, error)
		Availability(ctx context.Context, recipe []*entities.ProductIngredient) (string, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

// RegisterEntry is the only way stock ever changes. An existing item (matched
// by case-insensitive name) gets the entry appended to its ledger and its
// quantity bumped; an unknown name becomes a new item with a fresh SKU.
func (s *inventoryService) RegisterEntry(ctx context.Context, req domain.StockEntryRequest) (domain.StockEntryResponse, error) {
	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return domain.StockEntryResponse{}, domain.ErrInvalidEntryQuantity
	}

	cost := decimal.Zero
	if req.Cost != "" {
		cost, err = decimal.NewFromString(req.Cost)
		if err != nil {
			return domain.StockEntryResponse{}, domain.ErrInvalidEntryQuantity
		}
	}

	entry := &entities.InventoryEntry{
		ID:   uuid.New(),
		Date: time.Now(),
		Qty:  qty,
		Cost: cost,
		Unit: req.Unit,
	}

	existing, err := s.inventoryRepository.GetItemByName(ctx, req.Name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StockEntryResponse{}, err
		}

		item := &entities.InventoryItem{
			ID:       uuid.New(),
			SKU:      newSKU(),
			Name:     req.Name,
			Category: req.Category,
			Quantity: qty,
			Unit:     req.Unit,
		}
		if err := s.inventoryRepository.CreateItem(ctx, item, entry); err != nil {
			return domain.StockEntryResponse{}, err
		}
		return toStockEntryResponse(item), nil
	}

	if err := s.inventoryRepository.AppendEntry(ctx, existing, entry, qty); err != nil {
		return domain.StockEntryResponse{}, err
	}
	existing.Quantity = existing.Quantity.Add(qty)
	return toStockEntryResponse(existing), nil
}

func (s *inventoryService) GetInventory(ctx context.Context) ([]domain.InventoryItemResponse, error) {
	items, err := s.inventoryRepository.GetItems(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		history := make([]domain.InventoryEntryResponse, 0, len(item.Entries))
		for _, entry := range item.Entries {
			history = append(history, domain.InventoryEntryResponse{
				Date: entry.Date,
				Qty:  entry.Qty,
				Cost: entry.Cost,
				Unit: entry.Unit,
			})
		}
		responses = append(responses, domain.InventoryItemResponse{
			ID:       item.ID.String(),
			SKU:      item.SKU,
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			History:  history,
		})
	}
	return responses, nil
}

// Availability derives a product's stock badge from its recipe. A missing or
// insufficient ingredient decides critical immediately; otherwise an
// ingredient with less than five servings of headroom downgrades to warning.
func (s *inventoryService) Availability(ctx context.Context, recipe []*entities.ProductIngredient) (string, error) {
	if len(recipe) == 0 {
		return StockOK, nil
	}

	status := StockOK
	for _, line := range recipe {
		item, err := s.inventoryRepository.GetItemByID(ctx, line.InventoryItemID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StockCritical, nil
			}
			return "", err
		}
		if item.Quantity.LessThan(line.Quantity) {
			return StockCritical, nil
		}
		if item.Quantity.LessThan(line.Quantity.Mul(headroomServings)) {
			status = StockWarning
		}
	}
	return status, nil
}

func toStockEntryResponse(item *entities.InventoryItem) domain.StockEntryResponse {
	return domain.StockEntryResponse{
		ItemID:   item.ID.String(),
		SKU:      item.SKU,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
	}
}

// newSKU is a short random alphanumeric tag for staff-facing labels. The
// collision risk over a restaurant-sized inventory is accepted.
func newSKU() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
