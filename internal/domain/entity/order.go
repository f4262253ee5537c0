package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

// Order errors define domain-specific error conditions for orders.
var (
	ErrInvalidClientName       = errors.New("client name cannot be empty")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("order status cannot change from a final state")
)

// OrderStatus represents where an order is in the production flow.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"       // Order received, not started
	OrderStatusInProduction OrderStatus = "in_production" // Pieces are being printed/sewn
	OrderStatusReady        OrderStatus = "ready"         // Ready for pickup or shipping
	OrderStatusDelivered    OrderStatus = "delivered"     // Handed to the client
	OrderStatusCancelled    OrderStatus = "cancelled"     // Cancelled before delivery
)

// IsValid checks if the status is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProduction, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsFinal reports whether no further status change is allowed.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is a client order (pedido) and the pieces it contains.
type Order struct {
	// ID is the unique identifier for the order
	ID uuid.UUID `json:"id"`

	// Number is the sequential, human-facing order number (assigned on save)
	Number int `json:"number"`

	// ClientName is the name of the client
	ClientName string `json:"client_name"`

	// ClientCPF is the client's taxpayer id, if provided
	ClientCPF string `json:"client_cpf,omitempty"`

	// ClientEmail is the client's e-mail, if provided
	ClientEmail string `json:"client_email,omitempty"`

	// Status indicates the production status
	Status OrderStatus `json:"status"`

	// Notes holds free-text observations
	Notes string `json:"notes,omitempty"`

	// Items are the pieces to produce
	Items []ProductionItem `json:"items"`

	// TotalArea is the summed area of every item with known dimensions, in cm²
	TotalArea float64 `json:"total_area"`

	// TotalValue is the summed value of every item
	TotalValue valueobject.MoneyValue `json:"total_value"`

	// CreatedAt is the timestamp when the order was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the order was last updated
	UpdatedAt time.Time `json:"updated_at"`

	// Version is used for optimistic locking
	Version int `json:"version"`
}

// NewOrder creates a new pending Order.
//
// Parameters:
//   - clientName: Name of the client (required)
//   - items: Pieces in the order
//   - totalArea: Summed area of the items, in cm²
//   - totalValue: Summed value of the items
//
// Returns:
//   - *Order: newly created Order
//   - error: ErrInvalidClientName if the client name is blank
func NewOrder(
	clientName string,
	items []ProductionItem,
	totalArea float64,
	totalValue valueobject.MoneyValue,
) (*Order, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, ErrInvalidClientName
	}

	if items == nil {
		items = make([]ProductionItem, 0)
	}

	now := time.Now().UTC()

	return &Order{
		ID:         uuid.New(),
		ClientName: clientName,
		Status:     OrderStatusPending,
		Items:      items,
		TotalArea:  totalArea,
		TotalValue: totalValue,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}, nil
}

// ChangeStatus moves the order to a new status.
// Delivered and cancelled orders are final.
//
// Parameters:
//   - status: the new status
//
// Returns:
//   - error: ErrInvalidStatus for unknown statuses,
//     ErrInvalidStatusTransition if the order is already final
func (o *Order) ChangeStatus(status OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if o.Status == status {
		return nil
	}
	if o.Status.IsFinal() {
		return ErrInvalidStatusTransition
	}

	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// SetClientContact records the client's CPF and e-mail.
func (o *Order) SetClientContact(cpf, email string) {
	o.ClientCPF = strings.TrimSpace(cpf)
	o.ClientEmail = strings.TrimSpace(email)
	o.UpdatedAt = time.Now().UTC()
}

// SetNotes replaces the order's observations.
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now().UTC()
}

// ItemCount returns the number of pieces in the order.
func (o *Order) ItemCount() int {
	return len(o.Items)
}
