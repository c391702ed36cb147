package handlers

import (
	"context"
	"errors"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/internal/api/presenters"
	"github.com/familia-davanzo/assados-backend/pkg/order"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		PlaceOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		KitchenQueue(c *fiber.Ctx) error
		ReadyForPickup(c *fiber.Ctx) error
		MyDeliveries(c *fiber.Ctx) error
		History(c *fiber.Ctx) error
		StartPreparing(c *fiber.Ctx) error
		MarkReady(c *fiber.Ctx) error
		ClaimDelivery(c *fiber.Ctx) error
		ConfirmDelivery(c *fiber.Ctx) error
		Dashboard(c *fiber.Ctx) error
		PixCode(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) PlaceOrder(c *fiber.Ctx) error {
	req := new(domain.PlaceOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlaceOrder, err)
	}

	res, err := h.orderService.PlaceOrder(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedPlaceOrder, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlaceOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessPlaceOrder)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrders(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) KitchenQueue(c *fiber.Ctx) error {
	res, err := h.orderService.KitchenQueue(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) ReadyForPickup(c *fiber.Ctx) error {
	res, err := h.orderService.ReadyForPickup(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) MyDeliveries(c *fiber.Ctx) error {
	driverEmail := c.Locals("email").(string)

	res, err := h.orderService.ActiveDeliveries(c.Context(), driverEmail)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) History(c *fiber.Ctx) error {
	res, err := h.orderService.History(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) StartPreparing(c *fiber.Ctx) error {
	return h.transition(c, h.orderService.StartPreparing)
}

func (h *orderHandler) MarkReady(c *fiber.Ctx) error {
	return h.transition(c, h.orderService.MarkReady)
}

func (h *orderHandler) ClaimDelivery(c *fiber.Ctx) error {
	orderID := c.Params("id")
	driverEmail := c.Locals("email").(string)

	if err := h.orderService.ClaimDelivery(c.Context(), orderID, driverEmail); err != nil {
		if errors.Is(err, domain.ErrOrderAlreadyClaimed) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedUpdateOrderStatus, err)
		}
		return h.transitionError(c, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) ConfirmDelivery(c *fiber.Ctx) error {
	orderID := c.Params("id")
	driverEmail := c.Locals("email").(string)

	if err := h.orderService.ConfirmDelivery(c.Context(), orderID, driverEmail); err != nil {
		if errors.Is(err, domain.ErrNotAssignedDriver) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUpdateOrderStatus, err)
		}
		return h.transitionError(c, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) Dashboard(c *fiber.Ctx) error {
	res, err := h.orderService.Dashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *orderHandler) PixCode(c *fiber.Ctx) error {
	orderID := c.Params("id")

	res, err := h.orderService.PixCode(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPixCode, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPixCode, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPixCode)
}

func (h *orderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) error) error {
	orderID := c.Params("id")

	if err := fn(c.Context(), orderID); err != nil {
		return h.transitionError(c, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateOrderStatus, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedUpdateOrderStatus, err)
	default:
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderStatus, err)
	}
}
