package order

import (
	"context"

	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	// DashboardStats is the aggregate row behind the admin overview cards.
	DashboardStats struct {
		TotalSales       decimal.Decimal
		TotalOrders      int64
		PendingOrders    int64
		ActiveDeliveries int64
	}

	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		GetOrders(ctx context.Context) ([]*entities.Order, error)
		GetOrdersByStatus(ctx context.Context, statuses ...string) ([]*entities.Order, error)
		GetActiveOrders(ctx context.Context) ([]*entities.Order, error)
		GetDriverDeliveries(ctx context.Context, driverEmail string) ([]*entities.Order, error)
		// AdvanceStatus performs a compare-and-swap write: the status column
		// is updated only if it still equals from. Returns false when another
		// writer got there first.
		AdvanceStatus(ctx context.Context, id, from, to string, fields map[string]interface{}) (bool, error)
		GetDashboardStats(ctx context.Context) (DashboardStats, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrdersByStatus(ctx context.Context, statuses ...string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetActiveOrders(ctx context.Context) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("status NOT IN ?", []string{StatusDelivered, StatusCancelled}).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetDriverDeliveries(ctx context.Context, driverEmail string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND driver_email = ?", StatusDelivering, driverEmail).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) AdvanceStatus(ctx context.Context, id, from, to string, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	tx := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *orderRepository) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	var totalSales decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("status <> ?", StatusCancelled).
		Select("SUM(total)").Scan(&totalSales).Error; err != nil {
		return DashboardStats{}, err
	}
	if totalSales.Valid {
		stats.TotalSales = totalSales.Decimal
	}

	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Count(&stats.TotalOrders).Error; err != nil {
		return DashboardStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("status IN ?", []string{StatusPending, StatusPreparing}).
		Count(&stats.PendingOrders).Error; err != nil {
		return DashboardStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("status = ?", StatusDelivering).
		Count(&stats.ActiveDeliveries).Error; err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}
