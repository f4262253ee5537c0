package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	ClientName  string                  `json:"client_name"`
	ClientCPF   string                  `json:"client_cpf,omitempty"`
	ClientEmail string                  `json:"client_email,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	Items       []entity.ProductionItem `json:"items"`
}

// Bind trims the free-text fields after decoding.
func (r *CreateOrderRequest) Bind(_ *http.Request) error {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientCPF = strings.TrimSpace(r.ClientCPF)
	r.ClientEmail = strings.TrimSpace(r.ClientEmail)
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

// UpdateOrderStatusRequest is the body of PATCH /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Bind normalizes the requested status.
func (r *UpdateOrderStatusRequest) Bind(_ *http.Request) error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	return nil
}

// OrderResponse is the external representation of an order.
type OrderResponse struct {
	ID            string                  `json:"id"`
	Number        int                     `json:"number"`
	ClientName    string                  `json:"client_name"`
	ClientCPF     string                  `json:"client_cpf,omitempty"`
	ClientEmail   string                  `json:"client_email,omitempty"`
	Status        string                  `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	Items         []entity.ProductionItem `json:"items"`
	ItemCount     int                     `json:"item_count"`
	TotalArea     float64                 `json:"total_area"`
	FormattedArea string                  `json:"formatted_area"`
	TotalValue    valueobject.MoneyValue  `json:"total_value"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	Version       int                     `json:"version"`
}

// NewOrderResponse maps an order entity to its response.
func NewOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		Number:        o.Number,
		ClientName:    o.ClientName,
		ClientCPF:     o.ClientCPF,
		ClientEmail:   o.ClientEmail,
		Status:        string(o.Status),
		Notes:         o.Notes,
		Items:         o.Items,
		ItemCount:     o.ItemCount(),
		TotalArea:     o.TotalArea,
		FormattedArea: valueobject.FormatBrazilianDecimal(o.TotalArea),
		TotalValue:    o.TotalValue,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
}

// NewOrderResponses maps a list of orders, preserving order.
func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
