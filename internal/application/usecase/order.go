package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hapkiduki/sgp-engine/internal/application/port"
	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/repository"
	"github.com/hapkiduki/sgp-engine/internal/domain/service"
	"github.com/hapkiduki/sgp-engine/internal/domain/validation"
)

const (
	// DefaultPageSize is used when a list request does not set a limit.
	DefaultPageSize = 20

	// MaxPageSize caps the limit of a list request.
	MaxPageSize = 100
)

// CreateOrderInput holds the client data and pieces of a new order.
type CreateOrderInput struct {
	ClientName  string
	ClientCPF   string
	ClientEmail string
	Notes       string
	Items       []entity.ProductionItem
}

// ListOrdersInput holds the filters and pagination of a list request.
type ListOrdersInput struct {
	Status     string
	ClientName string
	Limit      int
	Offset     int
}

// OrderPage is one page of orders plus the total matching count.
type OrderPage struct {
	Orders []*entity.Order
	Total  int64
	Limit  int
	Offset int
}

// OrderService manages the lifecycle of orders.
type OrderService struct {
	repo repository.OrderRepository
	log  port.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(repo repository.OrderRepository, log port.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// Create validates the input, computes the order totals and persists it.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - in: client data and items
//
// Returns:
//   - *entity.Order: the stored order with its sequential number
//   - error: *ValidationError for bad input, or a repository error
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if err := validateCreateOrder(in); err != nil {
		return nil, err
	}

	batch := service.ProcessProductionBatch(in.Items)

	order, err := entity.NewOrder(in.ClientName, batch.Items, batch.TotalArea, batch.TotalMoney())
	if err != nil {
		return nil, NewValidationError("client_name", err.Error())
	}
	order.SetClientContact(in.ClientCPF, in.ClientEmail)
	order.SetNotes(in.Notes)

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.WithContext(ctx).Info("order created",
		"order_id", order.ID.String(),
		"number", order.Number,
		"items", order.ItemCount(),
		"total_value", order.TotalValue.FormattedValue,
	)
	return order, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

// List returns a page of orders, newest first.
func (s *OrderService) List(ctx context.Context, in ListOrdersInput) (OrderPage, error) {
	filter := repository.OrderFilter{
		ClientName: strings.TrimSpace(in.ClientName),
		Limit:      in.Limit,
		Offset:     max(in.Offset, 0),
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultPageSize
	case filter.Limit > MaxPageSize:
		filter.Limit = MaxPageSize
	}

	if in.Status != "" {
		status := entity.OrderStatus(strings.ToLower(in.Status))
		if !status.IsValid() {
			return OrderPage{}, NewValidationError("status", entity.ErrInvalidStatus.Error())
		}
		filter.Status = &status
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return OrderPage{}, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return OrderPage{}, fmt.Errorf("count orders: %w", err)
	}

	return OrderPage{
		Orders: orders,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// UpdateStatus moves an order to a new status.
//
// Returns:
//   - *entity.Order: the updated order
//   - error: *ValidationError for unknown statuses,
//     entity.ErrInvalidStatusTransition for final orders,
//     repository.ErrOrderNotFound or repository.ErrOptimisticLock
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	next := entity.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.IsValid() {
		return nil, NewValidationError("status", entity.ErrInvalidStatus.Error())
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	previous := order.Status
	if err := order.ChangeStatus(next); err != nil {
		return nil, fmt.Errorf("order %d: %w", order.Number, err)
	}
	if previous == next {
		return order, nil
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	s.log.WithContext(ctx).Info("order status changed",
		"order_id", order.ID.String(),
		"from", string(previous),
		"to", string(next),
	)
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	s.log.WithContext(ctx).Info("order deleted", "order_id", id.String())
	return nil
}

func validateCreateOrder(in CreateOrderInput) error {
	verr := &ValidationError{}

	if strings.TrimSpace(in.ClientName) == "" {
		verr.Add("client_name", entity.ErrInvalidClientName.Error())
	}
	if cpf := strings.TrimSpace(in.ClientCPF); cpf != "" && !validation.IsValidCPF(cpf) {
		verr.Add("client_cpf", "invalid CPF")
	}
	if email := strings.TrimSpace(in.ClientEmail); email != "" && !validation.IsValidEmail(email) {
		verr.Add("client_email", "invalid e-mail address")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "order must contain at least one item")
	}

	var (
		orderTotal float64
		itemErrors bool
	)
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if err := item.Validate(); err != nil {
			verr.Add(field, err.Error())
			itemErrors = true
			continue
		}

		var msgs []string
		if dim, ok := item.Dimension(); ok {
			msgs = append(msgs, validation.ValidateDimensions(dim.Width, dim.Height).Errors...)
		}
		if item.Ilhos != nil {
			msgs = append(msgs, item.Ilhos.Validate().Errors...)
		}
		if value := item.TotalValue(); value > 0 {
			msgs = append(msgs, validation.ValidateMoneyValue(value).Errors...)
			orderTotal += value
		}

		for _, msg := range msgs {
			verr.Add(field, msg)
			itemErrors = true
		}
	}

	// Items within the limit can still add up past it.
	if !itemErrors && orderTotal > validation.MaxMoneyValue {
		verr.Add("items", "order total is too high (maximum R$ 999.999,99)")
	}

	return verr.errOrNil()
}
