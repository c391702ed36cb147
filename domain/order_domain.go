package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessPlaceOrder        = "order placed successfully"
	MessageSuccessGetOrders         = "orders retrieved successfully"
	MessageSuccessUpdateOrderStatus = "order status updated successfully"
	MessageSuccessGetDashboard      = "dashboard retrieved successfully"
	MessageSuccessGetPixCode        = "pix code generated successfully"

	MessageFailedPlaceOrder        = "failed to place order"
	MessageFailedGetOrders         = "failed to retrieve orders"
	MessageFailedUpdateOrderStatus = "failed to update order status"
	MessageFailedGetDashboard      = "failed to retrieve dashboard"
	MessageFailedGetPixCode        = "failed to generate pix code"

	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrMissingCheckoutField = errors.New("name, whatsapp and address are required")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrOrderAlreadyClaimed  = errors.New("order was already taken by another driver")
	ErrNotAssignedDriver    = errors.New("delivery belongs to another driver")
)

type (
	OrderItemRequest struct {
		ProductID string `json:"product_id" validate:"required,uuid"`
		Qty       int    `json:"qty" validate:"required,min=1"`
	}

	PlaceOrderRequest struct {
		Customer      string             `json:"customer" validate:"required"`
		Whatsapp      string             `json:"whatsapp" validate:"required"`
		Address       string             `json:"address" validate:"required"`
		Notes         string             `json:"notes"`
		PaymentMethod string             `json:"payment_method" validate:"required,oneof=Pix Dinheiro 'Cartão de Crédito' 'Cartão de Débito'"`
		Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	PlaceOrderResponse struct {
		ID           string          `json:"id"`
		Status       string          `json:"status"`
		Total        decimal.Decimal `json:"total"`
		WhatsappLink string          `json:"whatsapp_link"`
	}

	OrderItemResponse struct {
		Name  string          `json:"name"`
		Qty   int             `json:"qty"`
		Price decimal.Decimal `json:"price"`
	}

	OrderResponse struct {
		ID            string              `json:"id"`
		Customer      string              `json:"customer"`
		Whatsapp      string              `json:"whatsapp"`
		Address       string              `json:"address"`
		Notes         string              `json:"notes,omitempty"`
		PaymentMethod string              `json:"payment_method"`
		Total         decimal.Decimal     `json:"total"`
		Status        string              `json:"status"`
		DriverEmail   string              `json:"driver_email,omitempty"`
		ContactLink   string              `json:"contact_link,omitempty"`
		Items         []OrderItemResponse `json:"items"`
		CreatedAt     time.Time           `json:"created_at"`
	}

	DashboardResponse struct {
		TotalSales       decimal.Decimal `json:"total_sales"`
		TotalOrders      int64           `json:"total_orders"`
		PendingOrders    int64           `json:"pending_orders"`
		ActiveDeliveries int64           `json:"active_deliveries"`
	}

	PixCodeResponse struct {
		Payload string          `json:"payload"`
		Amount  decimal.Decimal `json:"amount"`
	}
)
