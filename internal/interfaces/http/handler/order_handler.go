package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/usecase"
)

// OrderHandler serves the /orders endpoints.
type OrderHandler struct {
	responder
	orders *usecase.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders *usecase.OrderService, rs responder) *OrderHandler {
	return &OrderHandler{responder: rs, orders: orders}
}

// Routes mounts the order endpoints on r.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.orders.Create(r.Context(), usecase.CreateOrderInput{
		ClientName:  req.ClientName,
		ClientCPF:   req.ClientCPF,
		ClientEmail: req.ClientEmail,
		Notes:       req.Notes,
		Items:       req.Items,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/orders/%s", order.ID))
	h.ok(w, r, http.StatusCreated, dto.NewOrderResponse(order))
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		h.handleError(w, r, usecase.NewValidationError("limit", "limit must be an integer"))
		return
	}
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		h.handleError(w, r, usecase.NewValidationError("offset", "offset must be an integer"))
		return
	}

	page, err := h.orders.List(r.Context(), usecase.ListOrdersInput{
		Status:     q.Get("status"),
		ClientName: q.Get("client"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.NewPaginateResponse(
		dto.NewOrderResponses(page.Orders), page.Total, page.Limit, page.Offset))
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.NewOrderResponse(order))
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.NewOrderResponse(order))
}

func (h *OrderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// orderID parses the {id} URL parameter, writing a 400 response on failure.
func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, dto.CodeBadRequest, "order id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
