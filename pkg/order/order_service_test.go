package order

import (
	"context"
	"testing"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/familia-davanzo/assados-backend/pkg/pix"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderRepository struct {
	orders map[string]*entities.Order
	seq    []string
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: map[string]*entities.Order{}}
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order *entities.Order) error {
	id := order.ID.String()
	f.orders[id] = order
	f.seq = append(f.seq, id)
	return nil
}

func (f *fakeOrderRepository) GetOrderByID(_ context.Context, id string) (*entities.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderRepository) GetOrders(_ context.Context) ([]*entities.Order, error) {
	return f.filter(func(*entities.Order) bool { return true }), nil
}

func (f *fakeOrderRepository) GetOrdersByStatus(_ context.Context, statuses ...string) ([]*entities.Order, error) {
	return f.filter(func(o *entities.Order) bool {
		for _, s := range statuses {
			if o.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (f *fakeOrderRepository) GetActiveOrders(_ context.Context) ([]*entities.Order, error) {
	return f.filter(func(o *entities.Order) bool { return !IsTerminal(o.Status) }), nil
}

func (f *fakeOrderRepository) GetDriverDeliveries(_ context.Context, driverEmail string) ([]*entities.Order, error) {
	return f.filter(func(o *entities.Order) bool {
		return o.Status == StatusDelivering && o.DriverEmail == driverEmail
	}), nil
}

func (f *fakeOrderRepository) AdvanceStatus(_ context.Context, id, from, to string, fields map[string]interface{}) (bool, error) {
	order, ok := f.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	if email, ok := fields["driver_email"]; ok {
		order.DriverEmail = email.(string)
	}
	return true, nil
}

func (f *fakeOrderRepository) GetDashboardStats(_ context.Context) (DashboardStats, error) {
	var stats DashboardStats
	for _, o := range f.orders {
		stats.TotalOrders++
		if o.Status != StatusCancelled {
			stats.TotalSales = stats.TotalSales.Add(o.Total)
		}
		if o.Status == StatusPending || o.Status == StatusPreparing {
			stats.PendingOrders++
		}
		if o.Status == StatusDelivering {
			stats.ActiveDeliveries++
		}
	}
	return stats, nil
}

func (f *fakeOrderRepository) filter(keep func(*entities.Order) bool) []*entities.Order {
	var out []*entities.Order
	for _, id := range f.seq {
		if keep(f.orders[id]) {
			out = append(out, f.orders[id])
		}
	}
	return out
}

type fakeProductFinder struct {
	products map[string]*entities.Product
}

func (f *fakeProductFinder) GetProductByID(_ context.Context, id string) (*entities.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

var testMerchant = MerchantConfig{
	PixKey: "pix@davanzo.com.br",
	Name:   "ASSADOS FAMILIA DAVANZO",
	City:   "SAO PAULO",
}

func newTestService() (OrderService, *fakeOrderRepository, *fakeProductFinder) {
	repo := newFakeOrderRepository()
	products := &fakeProductFinder{products: map[string]*entities.Product{}}
	return NewOrderService(repo, products, testMerchant), repo, products
}

func addProduct(f *fakeProductFinder, name string, price float64) string {
	id := uuid.New()
	f.products[id.String()] = &entities.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromFloat(price),
	}
	return id.String()
}

func placeTestOrder(t *testing.T, svc OrderService, products *fakeProductFinder) domain.PlaceOrderResponse {
	t.Helper()
	a := addProduct(products, "Frango Assado", 12.50)
	b := addProduct(products, "Farofa", 8.00)

	res, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Customer:      "Maria Silva",
		Whatsapp:      "(11) 91234-5678",
		Address:       "Rua das Laranjeiras, 123",
		Notes:         "sem cebola",
		PaymentMethod: "Pix",
		Items: []domain.OrderItemRequest{
			{ProductID: a, Qty: 1},
			{ProductID: b, Qty: 2},
		},
	})
	require.NoError(t, err)
	return res
}

func TestPlaceOrder(t *testing.T) {
	svc, repo, products := newTestService()

	res := placeTestOrder(t, svc, products)

	assert.Equal(t, StatusPending, res.Status)
	assert.True(t, res.Total.Equal(decimal.NewFromFloat(28.50)), "got %s", res.Total)

	stored, err := repo.GetOrderByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Empty(t, stored.DriverEmail)
	assert.Equal(t, 2, stored.Items[1].Qty)

	assert.Contains(t, res.WhatsappLink, "https://wa.me/5511912345678?text=")
	assert.Contains(t, res.WhatsappLink, "%2ANovo%20Pedido%20-%20Assados%20Davanzo%2A")
	assert.Contains(t, res.WhatsappLink, "R%24%2028%2C50")
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, _, products := newTestService()
	a := addProduct(products, "Farofa", 8.00)

	_, err := svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Customer: "  ",
		Whatsapp: "11912345678",
		Address:  "Rua X",
		Items:    []domain.OrderItemRequest{{ProductID: a, Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingCheckoutField)

	_, err = svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Customer: "Maria",
		Whatsapp: "11912345678",
		Address:  "Rua X",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Customer: "Maria",
		Whatsapp: "11912345678",
		Address:  "Rua X",
		Items:    []domain.OrderItemRequest{{ProductID: uuid.NewString(), Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLifecycleHappyPath(t *testing.T) {
	svc, repo, products := newTestService()
	ctx := context.Background()
	res := placeTestOrder(t, svc, products)

	require.NoError(t, svc.StartPreparing(ctx, res.ID))
	require.NoError(t, svc.MarkReady(ctx, res.ID))
	require.NoError(t, svc.ClaimDelivery(ctx, res.ID, "driver@davanzo.com"))
	require.NoError(t, svc.ConfirmDelivery(ctx, res.ID, "driver@davanzo.com"))

	order, err := repo.GetOrderByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, order.Status)
	assert.Equal(t, "driver@davanzo.com", order.DriverEmail)
}

func TestTransitionsAreMonotonic(t *testing.T) {
	svc, _, products := newTestService()
	ctx := context.Background()
	res := placeTestOrder(t, svc, products)

	// pendente → pronto skips a step.
	assert.ErrorIs(t, svc.MarkReady(ctx, res.ID), domain.ErrInvalidTransition)
	// pendente → em_entrega is not claimable.
	assert.ErrorIs(t, svc.ClaimDelivery(ctx, res.ID, "driver@davanzo.com"), domain.ErrInvalidTransition)

	require.NoError(t, svc.StartPreparing(ctx, res.ID))
	// no going back.
	assert.ErrorIs(t, svc.StartPreparing(ctx, res.ID), domain.ErrInvalidTransition)

	require.NoError(t, svc.MarkReady(ctx, res.ID))
	require.NoError(t, svc.ClaimDelivery(ctx, res.ID, "driver@davanzo.com"))
	require.NoError(t, svc.ConfirmDelivery(ctx, res.ID, "driver@davanzo.com"))

	// entregue is terminal.
	assert.ErrorIs(t, svc.StartPreparing(ctx, res.ID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.MarkReady(ctx, res.ID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.ConfirmDelivery(ctx, res.ID, "driver@davanzo.com"), domain.ErrInvalidTransition)
}

func TestUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService()
	assert.ErrorIs(t, svc.StartPreparing(context.Background(), uuid.NewString()), domain.ErrOrderNotFound)
	assert.ErrorIs(t, svc.ConfirmDelivery(context.Background(), uuid.NewString(), "x@y.com"), domain.ErrOrderNotFound)
}

func TestClaimDeliveryRace(t *testing.T) {
	svc, repo, products := newTestService()
	ctx := context.Background()
	res := placeTestOrder(t, svc, products)

	require.NoError(t, svc.StartPreparing(ctx, res.ID))
	require.NoError(t, svc.MarkReady(ctx, res.ID))

	require.NoError(t, svc.ClaimDelivery(ctx, res.ID, "first@davanzo.com"))
	assert.ErrorIs(t, svc.ClaimDelivery(ctx, res.ID, "second@davanzo.com"), domain.ErrOrderAlreadyClaimed)

	// attribution sticks to the winner.
	order, err := repo.GetOrderByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "first@davanzo.com", order.DriverEmail)
}

func TestConfirmDeliveryRequiresAssignedDriver(t *testing.T) {
	svc, repo, products := newTestService()
	ctx := context.Background()
	res := placeTestOrder(t, svc, products)

	require.NoError(t, svc.StartPreparing(ctx, res.ID))
	require.NoError(t, svc.MarkReady(ctx, res.ID))
	require.NoError(t, svc.ClaimDelivery(ctx, res.ID, "first@davanzo.com"))

	assert.ErrorIs(t, svc.ConfirmDelivery(ctx, res.ID, "second@davanzo.com"), domain.ErrNotAssignedDriver)

	require.NoError(t, svc.ConfirmDelivery(ctx, res.ID, "first@davanzo.com"))
	order, err := repo.GetOrderByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "first@davanzo.com", order.DriverEmail)
}

// seedOrder plants an order directly in the repository at a given status.
func seedOrder(repo *fakeOrderRepository, status, driverEmail string, total float64) string {
	id := uuid.New()
	repo.orders[id.String()] = &entities.Order{
		ID:          id,
		Customer:    "Cliente",
		Status:      status,
		DriverEmail: driverEmail,
		Total:       decimal.NewFromFloat(total),
	}
	repo.seq = append(repo.seq, id.String())
	return id.String()
}

func TestDerivedQueues(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	pending := seedOrder(repo, StatusPending, "", 10)
	preparing := seedOrder(repo, StatusPreparing, "", 20)
	ready := seedOrder(repo, StatusReady, "", 30)
	delivering := seedOrder(repo, StatusDelivering, "a@davanzo.com", 40)
	otherDelivering := seedOrder(repo, StatusDelivering, "b@davanzo.com", 50)
	seedOrder(repo, StatusDelivered, "a@davanzo.com", 60)
	seedOrder(repo, StatusCancelled, "", 70)

	kitchen, err := svc.KitchenQueue(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{pending, preparing, ready, delivering, otherDelivering},
		orderIDs(kitchen))

	pickup, err := svc.ReadyForPickup(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ready}, orderIDs(pickup))

	mine, err := svc.ActiveDeliveries(ctx, "a@davanzo.com")
	require.NoError(t, err)
	assert.Equal(t, []string{delivering}, orderIDs(mine))

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, StatusDelivered, history[0].Status)
}

func TestActiveDeliveriesCarryContactLink(t *testing.T) {
	svc, repo, _ := newTestService()

	id := seedOrder(repo, StatusDelivering, "a@davanzo.com", 40)
	repo.orders[id].Whatsapp = "(11) 91234-5678"

	mine, err := svc.ActiveDeliveries(context.Background(), "a@davanzo.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "https://wa.me/5511912345678", mine[0].ContactLink)
}

func TestDashboardExcludesCancelled(t *testing.T) {
	svc, repo, _ := newTestService()

	seedOrder(repo, StatusPending, "", 10)
	seedOrder(repo, StatusPreparing, "", 20)
	seedOrder(repo, StatusDelivering, "a@davanzo.com", 40)
	seedOrder(repo, StatusCancelled, "", 500)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalSales.Equal(decimal.NewFromInt(70)), "got %s", stats.TotalSales)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.ActiveDeliveries)
}

func TestPixCodeForOrder(t *testing.T) {
	svc, _, products := newTestService()
	res := placeTestOrder(t, svc, products)

	code, err := svc.PixCode(context.Background(), res.ID)
	require.NoError(t, err)
	assert.True(t, code.Amount.Equal(decimal.NewFromFloat(28.50)))
	assert.Contains(t, code.Payload, "540528.50")
	assert.Contains(t, code.Payload, "br.gov.bcb.pix")

	body, crc := code.Payload[:len(code.Payload)-4], code.Payload[len(code.Payload)-4:]
	assert.Equal(t, pix.CRC16(body), crc)

	_, err = svc.PixCode(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func orderIDs(orders []domain.OrderResponse) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
