package handlers

import (
	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/internal/api/presenters"
	"github.com/familia-davanzo/assados-backend/pkg/inventory"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		RegisterEntry(c *fiber.Ctx) error
		GetInventory(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	req := new(domain.StockEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStockEntry, err)
	}

	res, err := h.inventoryService.RegisterEntry(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStockEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessStockEntry)
}

func (h *inventoryHandler) GetInventory(c *fiber.Ctx) error {
	res, err := h.inventoryService.GetInventory(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventory)
}
