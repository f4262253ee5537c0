package dto

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

func TestNewPaginateResponse(t *testing.T) {
	page := NewPaginateResponse([]int{1, 2}, 5, 2, 0)
	assert.True(t, page.HasMore)

	page = NewPaginateResponse([]int{5}, 5, 2, 4)
	assert.False(t, page.HasMore)

	empty := NewPaginateResponse[int](nil, 0, 20, 0)
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasMore)
}

func TestAPIResponse_WithMeta(t *testing.T) {
	resp := NewSuccessResponse("ok").WithMeta("req-1", "0.1.0")

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, "req-1", resp.Meta.RequestID)
	assert.Equal(t, "0.1.0", resp.Meta.Version)
	assert.NotEmpty(t, resp.Meta.Timestamp)

	errResp := NewValidationErrorResponse[any]([]ValidationError{{Field: "width", Message: "must be positive"}})
	assert.False(t, errResp.Success)
	assert.Equal(t, CodeValidation, errResp.Error.Code)
	assert.Len(t, errResp.Error.ValidationErrors, 1)
}

func TestBatchAreaRequest_Dimensions(t *testing.T) {
	req := BatchAreaRequest{Items: []AreaRequest{{Width: 1, Height: 2}, {Width: 3, Height: 4}}}

	assert.Equal(t, []valueobject.Dimension{
		valueobject.NewDimension(1, 2),
		valueobject.NewDimension(3, 4),
	}, req.Dimensions())
}

func TestRequestBinders(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)

	create := &CreateOrderRequest{ClientName: "  Loja  ", ClientEmail: " a@b.co "}
	require.NoError(t, create.Bind(r))
	assert.Equal(t, "Loja", create.ClientName)
	assert.Equal(t, "a@b.co", create.ClientEmail)

	status := &UpdateOrderStatusRequest{Status: " In_Production "}
	require.NoError(t, status.Bind(r))
	assert.Equal(t, "in_production", status.Status)
}

func TestNewOrderResponse(t *testing.T) {
	w, h := 100.0, 50.0
	order, err := entity.NewOrder("Loja", []entity.ProductionItem{{Width: &w, Height: &h}},
		5000, valueobject.NewMoneyFromCents(1555))
	require.NoError(t, err)
	order.Number = 7

	resp := NewOrderResponse(order)
	assert.Equal(t, order.ID.String(), resp.ID)
	assert.Equal(t, 7, resp.Number)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1, resp.ItemCount)
	assert.Equal(t, "5.000,00", resp.FormattedArea)
	assert.Equal(t, "15,55", resp.TotalValue.FormattedValue)

	assert.Len(t, NewOrderResponses(nil), 0)
}
