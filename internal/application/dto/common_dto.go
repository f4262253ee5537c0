// Package dto contains the data transfer objects exchanged over HTTP:
// the response envelope shared by every endpoint and the request and
// response bodies of the calculation and order endpoints.
package dto

import "time"

// Error codes carried in APIError.Code.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodeTimeout          = "TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// PaginateResponse is one page of a list endpoint.
type PaginateResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`

	// HasMore is true when items exist past this page.
	HasMore bool `json:"has_more"`
}

// NewPaginateResponse builds a page. A nil items slice is rendered as [].
func NewPaginateResponse[T any](items []T, total int64, limit, offset int) PaginateResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return PaginateResponse[T]{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	}
}

// APIResponse is the envelope of every JSON body the API writes.
// Exactly one of Data and Error is set.
type APIResponse[T any] struct {
	Success bool          `json:"success"`
	Data    T             `json:"data,omitempty"`
	Error   *APIError     `json:"error,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// APIError describes a failed request. ValidationErrors is only set for
// CodeValidation.
type APIError struct {
	Code             string            `json:"code"`
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// ValidationError is a problem with a single request field, e.g.
// {"field": "items[0]", "message": "production item field cannot be negative"}.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ResponseMeta correlates a response with the request and the server build.
type ResponseMeta struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"` // RFC 3339, UTC
	Version   string `json:"version,omitempty"`
}

// NewSuccessResponse wraps data in a successful response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// NewErrorResponse builds a failed response with the given code and message.
//
// Parameters:
//   - code: one of the Code* constants
//   - message: text safe to show to API clients
//
// Returns:
//   - APIResponse[T]: the error envelope (Data is the zero value)
func NewErrorResponse[T any](code, message string) APIResponse[T] {
	return APIResponse[T]{
		Error: &APIError{Code: code, Message: message},
	}
}

// NewValidationErrorResponse builds a CodeValidation response listing every
// rejected field.
func NewValidationErrorResponse[T any](fields []ValidationError) APIResponse[T] {
	return APIResponse[T]{
		Error: &APIError{
			Code:             CodeValidation,
			Message:          "request validation failed",
			ValidationErrors: fields,
		},
	}
}

// WithMeta attaches the request id, API version and current time.
func (r APIResponse[T]) WithMeta(requestID, version string) APIResponse[T] {
	r.Meta = &ResponseMeta{
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version,
	}
	return r
}

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy" or "unhealthy"
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Checks is only filled by /ready, keyed by dependency name.
	Checks map[string]HealthCheckResult `json:"checks,omitempty"`
}

// HealthCheckResult is the outcome of pinging one dependency.
type HealthCheckResult struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime int64  `json:"response_time_ms,omitempty"`
}
