package order

import (
	"context"
	"errors"
	"strings"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/familia-davanzo/assados-backend/pkg/cart"
	"github.com/familia-davanzo/assados-backend/pkg/pix"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ProductFinder is the slice of the product service the checkout flow
	// needs: the authoritative name and price for each cart line. Unknown
	// ids come back as domain.ErrProductNotFound.
	ProductFinder interface {
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
	}

	// MerchantConfig identifies the restaurant on PIX payloads.
	MerchantConfig struct {
		PixKey string
		Name   string
		City   string
	}

	OrderService interface {
		PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlaceOrderResponse, error)
		GetOrders(ctx context.Context) ([]domain.OrderResponse, error)
		KitchenQueue(ctx context.Context) ([]domain.OrderResponse, error)
		ReadyForPickup(ctx context.Context) ([]domain.OrderResponse, error)
		ActiveDeliveries(ctx context.Context, driverEmail string) ([]domain.OrderResponse, error)
		History(ctx context.Context) ([]domain.OrderResponse, error)
		StartPreparing(ctx context.Context, id string) error
		MarkReady(ctx context.Context, id string) error
		ClaimDelivery(ctx context.Context, id, driverEmail string) error
		ConfirmDelivery(ctx context.Context, id, driverEmail string) error
		Dashboard(ctx context.Context) (domain.DashboardResponse, error)
		PixCode(ctx context.Context, id string) (domain.PixCodeResponse, error)
	}

	orderService struct {
		orderRepository OrderRepository
		products        ProductFinder
		merchant        MerchantConfig
	}
)

func NewOrderService(orderRepository OrderRepository, products ProductFinder, merchant MerchantConfig) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		products:        products,
		merchant:        merchant,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlaceOrderResponse, error) {
	if strings.TrimSpace(req.Customer) == "" ||
		strings.TrimSpace(req.Whatsapp) == "" ||
		strings.TrimSpace(req.Address) == "" {
		return domain.PlaceOrderResponse{}, domain.ErrMissingCheckoutField
	}

	c := cart.New()
	for _, item := range req.Items {
		product, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return domain.PlaceOrderResponse{}, err
		}
		c.AddItem(product.ID.String(), product.Name, product.Price)
		if item.Qty > 1 {
			c.UpdateQuantity(product.ID.String(), item.Qty-1)
		}
	}

	if c.Empty() {
		return domain.PlaceOrderResponse{}, domain.ErrEmptyOrder
	}

	total := c.Total()
	items := c.ToOrderItems()

	order := &entities.Order{
		ID:            uuid.New(),
		Customer:      req.Customer,
		Whatsapp:      req.Whatsapp,
		Address:       req.Address,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		Total:         total,
		Status:        StatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, &entities.OrderItem{
			ID:      uuid.New(),
			OrderID: order.ID,
			Name:    item.Name,
			Qty:     item.Qty,
			Price:   item.Price,
		})
	}

	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return domain.PlaceOrderResponse{}, err
	}

	message := ComposeOrderMessage(req.Customer, req.Address, req.Notes, items, total)
	return domain.PlaceOrderResponse{
		ID:           order.ID.String(),
		Status:       order.Status,
		Total:        total,
		WhatsappLink: WhatsappLink(req.Whatsapp, message),
	}, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// KitchenQueue is every order that has not left the building: everything but
// entregue and cancelado. A recomputed view, never separate state.
func (s *orderService) KitchenQueue(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) ReadyForPickup(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrdersByStatus(ctx, StatusReady)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// ActiveDeliveries carries the customer's wa.me contact link so the driver
// can call ahead from the panel.
func (s *orderService) ActiveDeliveries(ctx context.Context, driverEmail string) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetDriverDeliveries(ctx, driverEmail)
	if err != nil {
		return nil, err
	}
	responses := toOrderResponses(orders)
	for i, order := range orders {
		responses[i].ContactLink = ContactLink(order.Whatsapp)
	}
	return responses, nil
}

func (s *orderService) History(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrdersByStatus(ctx, StatusDelivered)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) StartPreparing(ctx context.Context, id string) error {
	return s.advance(ctx, id, StatusPending, StatusPreparing, nil)
}

func (s *orderService) MarkReady(ctx context.Context, id string) error {
	return s.advance(ctx, id, StatusPreparing, StatusReady, nil)
}

// ClaimDelivery moves pronto→em_entrega and attaches the claiming driver.
// The conditional write makes two drivers racing for the same order resolve
// to exactly one winner; the loser gets ErrOrderAlreadyClaimed.
func (s *orderService) ClaimDelivery(ctx context.Context, id, driverEmail string) error {
	err := s.advance(ctx, id, StatusReady, StatusDelivering, map[string]interface{}{
		"driver_email": driverEmail,
	})
	if errors.Is(err, domain.ErrInvalidTransition) {
		current, lookupErr := s.orderRepository.GetOrderByID(ctx, id)
		if lookupErr == nil && current.Status == StatusDelivering {
			return domain.ErrOrderAlreadyClaimed
		}
	}
	return err
}

// ConfirmDelivery is restricted to the driver the order was claimed by.
// DriverEmail is never cleared or reassigned.
func (s *orderService) ConfirmDelivery(ctx context.Context, id, driverEmail string) error {
	current, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if current.DriverEmail != driverEmail {
		return domain.ErrNotAssignedDriver
	}
	return s.advance(ctx, id, StatusDelivering, StatusDelivered, nil)
}

func (s *orderService) advance(ctx context.Context, id, from, to string, fields map[string]interface{}) error {
	if !CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}

	ok, err := s.orderRepository.AdvanceStatus(ctx, id, from, to, fields)
	if err != nil {
		return err
	}
	if !ok {
		if _, lookupErr := s.orderRepository.GetOrderByID(ctx, id); lookupErr != nil {
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return lookupErr
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (s *orderService) Dashboard(ctx context.Context) (domain.DashboardResponse, error) {
	stats, err := s.orderRepository.GetDashboardStats(ctx)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	return domain.DashboardResponse{
		TotalSales:       stats.TotalSales,
		TotalOrders:      stats.TotalOrders,
		PendingOrders:    stats.PendingOrders,
		ActiveDeliveries: stats.ActiveDeliveries,
	}, nil
}

func (s *orderService) PixCode(ctx context.Context, id string) (domain.PixCodeResponse, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PixCodeResponse{}, domain.ErrOrderNotFound
		}
		return domain.PixCodeResponse{}, err
	}

	payload := pix.BuildPayload(s.merchant.PixKey, s.merchant.Name, s.merchant.City, order.Total, pix.DefaultReference)
	return domain.PixCodeResponse{
		Payload: payload,
		Amount:  order.Total,
	}, nil
}

func toOrderResponses(orders []*entities.Order) []domain.OrderResponse {
	responses := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	return responses
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.OrderItemResponse{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
		})
	}
	return domain.OrderResponse{
		ID:            order.ID.String(),
		Customer:      order.Customer,
		Whatsapp:      order.Whatsapp,
		Address:       order.Address,
		Notes:         order.Notes,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total,
		Status:        order.Status,
		DriverEmail:   order.DriverEmail,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
