package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// orderCodeAttempts bounds retries when a generated order code collides
const orderCodeAttempts = 3

// OrderService handles order submission and reads
type OrderService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	notifier    shared.Notifier
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	notifier shared.Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubmitOrder validates, persists, and forwards a new order.
// The stock check here is advisory; the authoritative gate is the
// conditional decrement inside CreateWithStockDecrement. The downstream
// forward happens after the insert commits and never rolls it back.
func (s *OrderService) SubmitOrder(ctx context.Context, input SubmitOrderInput) (*Order, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to load product for order", zap.Error(err))
		return nil, err
	}

	if !product.HasStock(input.Quantity) {
		return nil, shared.ErrInsufficientStock
	}

	var order *trade.Order
	for attempt := 1; ; attempt++ {
		order, err = trade.NewOrder(
			trade.GenerateOrderCode(),
			product.ID,
			product.Name,
			input.Quantity,
			product.Price,
			input.UserID,
			input.CustomerName,
			input.CustomerEmail,
			input.ShippingAddress,
			input.SpecialInstructions,
		)
		if err != nil {
			return nil, err
		}

		err = s.orderRepo.CreateWithStockDecrement(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, shared.ErrDuplicateCode) && attempt < orderCodeAttempts {
			s.logger.Warn("Order code collision, regenerating",
				zap.String("order_code", order.OrderCode),
				zap.Int("attempt", attempt))
			continue
		}
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.ErrInsufficientStock
		}
		s.logger.Error("Failed to persist order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_code", order.OrderCode),
		zap.String("product", order.ProductName),
		zap.Int("quantity", order.Quantity),
		zap.String("total", order.TotalPrice.StringFixed(2)))

	// Best effort: the order is already committed
	if report, err := s.notifier.Notify(ctx, shared.SubmissionKindOrder, toOrderPayload(order)); err != nil {
		s.logger.Warn("Order forward skipped",
			zap.String("order_code", order.OrderCode),
			zap.Error(err))
	} else if !report.Primary.Succeeded() {
		s.logger.Warn("Order forward failed downstream",
			zap.String("order_code", order.OrderCode),
			zap.Int("status", report.Primary.StatusCode))
	}

	result := toOrder(order)
	return &result, nil
}

// ListUserOrders returns the calling customer's own orders, newest first
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to list user orders", zap.Error(err))
		return nil, err
	}
	return toOrderList(orders), nil
}

// ListOrders returns all orders with optional search and status filtering.
// Owner read path; the search term matches order code literally and
// product name/customer email case-insensitively, AND-composed with the
// status.
func (s *OrderService) ListOrders(ctx context.Context, input ListOrdersInput) ([]Order, error) {
	filter := shared.DefaultFilter()
	filter.Search = input.Search
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.Status != "" {
		if !trade.OrderStatus(input.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		filter.Filters["status"] = input.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	return toOrderList(orders), nil
}

// TransitionOrder moves an order to the target status (owner operation)
func (s *OrderService) TransitionOrder(ctx context.Context, orderID uuid.UUID, target string) (*Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(trade.OrderStatus(target)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to save order transition", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_code", order.OrderCode),
		zap.String("status", target))

	result := toOrder(order)
	return &result, nil
}
