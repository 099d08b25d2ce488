package service

import (
	"context"
	"fmt"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/repository"
)

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("an order needs at least one item")
	}
	if _, err := s.customerRepo.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerID: in.CustomerID,
		Status:     domain.OrderStatusPending,
		Notes:      in.Notes,
	}
	for _, itemIn := range in.Items {
		if itemIn.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity must be greater than zero, got %d", itemIn.Quantity)
		}
		product, err := s.productRepo.GetByID(ctx, itemIn.ProductID)
		if err != nil {
			return nil, err
		}
		// Snapshot the customer price; later catalog edits leave this order
		// untouched.
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: itemIn.ProductID,
			Quantity:  itemIn.Quantity,
			UnitPrice: product.BasePrice,
		})
	}
	order.TotalAmount = order.ComputeTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	logger.Info("order created", "order_id", order.ID, "customer_id", order.CustomerID, "total", order.TotalAmount)
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, page, pageSize int) ([]domain.Order, int, error) {
	return s.orderRepo.List(ctx, page, pageSize)
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("unknown order status %q", status)
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}

	switch {
	case status.ConsumesStock() && !order.Status.ConsumesStock():
		// Finished stock is consumed once, on the first transition into a
		// stock-consuming status. Deduction and the status write commit
		// together or not at all.
		err = s.orderRepo.UpdateStatusConsumingStock(ctx, order, status)
	case status == domain.OrderStatusCancelled && order.Status.ConsumesStock():
		// Cancelling an order that already consumed stock puts the pieces
		// back on the shelf.
		err = s.orderRepo.UpdateStatusRestoringStock(ctx, order, status)
	default:
		err = s.orderRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("order status changed", "order_id", id, "from", order.Status, "to", status)
	order.Status = status
	return order, nil
}
