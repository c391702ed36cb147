package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessStockEntry   = "stock entry registered successfully"
	MessageSuccessGetInventory = "inventory retrieved successfully"
	MessageFailedStockEntry    = "failed to register stock entry"
	MessageFailedGetInventory  = "failed to retrieve inventory"

	ErrInvalidEntryQuantity = errors.New("entry quantity must be a decimal")
)

type (
	StockEntryRequest struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category"`
		Quantity string `json:"quantity" validate:"required"`
		Unit     string `json:"unit" validate:"required"`
		Cost     string `json:"cost"`
	}

	StockEntryResponse struct {
		ItemID   string          `json:"item_id"`
		SKU      string          `json:"sku"`
		Name     string          `json:"name"`
		Quantity decimal.Decimal `json:"quantity"`
		Unit     string          `json:"unit"`
	}

	InventoryEntryResponse struct {
		Date time.Time       `json:"date"`
		Qty  decimal.Decimal `json:"qty"`
		Cost decimal.Decimal `json:"cost"`
		Unit string          `json:"unit"`
	}

	InventoryItemResponse struct {
		ID       string                   `json:"id"`
		SKU      string                   `json:"sku"`
		Name     string                   `json:"name"`
		Category string                   `json:"category"`
		Quantity decimal.Decimal          `json:"quantity"`
		Unit     string                   `json:"unit"`
		History  []InventoryEntryResponse `json:"history,omitempty"`
	}
)
