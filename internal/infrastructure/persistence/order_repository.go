package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderCode finds an order by its generated code
func (r *GormOrderRepository) FindByOrderCode(ctx context.Context, orderCode string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("order_code = ?", orderCode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a customer's own orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("user_id = ?", userID)
	return r.list(applyOrderFilter(query, filter))
}

// FindAll returns all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	return r.list(applyOrderFilter(query, filter))
}

func (r *GormOrderRepository) list(query *gorm.DB) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, *orderModels[i].ToDomain())
	}
	return orders, nil
}

// CreateWithStockDecrement inserts the order and conditionally decrements
// the product's stock in a single transaction. The conditional UPDATE is
// the authoritative stock check: two concurrent orders for the last unit
// cannot both pass it.
func (r *GormOrderRepository) CreateWithStockDecrement(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ? AND stock >= ?", order.ProductID, order.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", order.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&catalog.Product{}).
				Where("id = ?", order.ProductID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrInsufficientStock
		}

		model := models.OrderModelFromDomain(order)
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateCode
			}
			return err
		}
		return nil
	})
}

// Save updates an existing order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyOrderFilter applies search, status and pagination to an order query.
// Search matches the order code literally and the product name and
// customer email case-insensitively.
func applyOrderFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"order_code LIKE ? OR LOWER(product_name) LIKE LOWER(?) OR LOWER(customer_email) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	if status, ok := filter.Filters["status"]; ok && status != nil && status != "" {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
