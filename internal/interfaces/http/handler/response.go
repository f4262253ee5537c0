// Package handler contains the HTTP handlers of the SGP API and the chi
// router that mounts them.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/port"
	"github.com/hapkiduki/sgp-engine/internal/application/usecase"
	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/repository"
	"github.com/hapkiduki/sgp-engine/internal/interfaces/http/middleware"
)

// errMalformedBody marks request bodies that could not be decoded.
var errMalformedBody = errors.New("malformed request body")

// responder writes responses in the dto.APIResponse envelope.
type responder struct {
	version string
	log     port.Logger
}

func (rs responder) ok(w http.ResponseWriter, r *http.Request, status int, data any) {
	resp := dto.NewSuccessResponse(data).WithMeta(middleware.GetRequestID(r.Context()), rs.version)

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := dto.NewErrorResponse[any](code, message).WithMeta(middleware.GetRequestID(r.Context()), rs.version)

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// decode reads a JSON body into v, then runs v's Bind method when it
// implements render.Binder.
func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return maxErr
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	if binder, ok := v.(render.Binder); ok {
		if err := binder.Bind(r); err != nil {
			return fmt.Errorf("%w: %v", errMalformedBody, err)
		}
	}
	return nil
}

// handleError maps application and domain errors to HTTP responses.
func (rs responder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *usecase.ValidationError
		maxErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &verr):
		fields := make([]dto.ValidationError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.ValidationError{Field: f.Field, Message: f.Message})
		}
		resp := dto.NewValidationErrorResponse[any](fields).
			WithMeta(middleware.GetRequestID(r.Context()), rs.version)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, resp)

	case errors.As(err, &maxErr):
		rs.fail(w, r, http.StatusRequestEntityTooLarge, dto.CodeBadRequest,
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))

	case errors.Is(err, errMalformedBody):
		rs.fail(w, r, http.StatusBadRequest, dto.CodeBadRequest, err.Error())

	case repository.IsNotFoundError(err):
		rs.fail(w, r, http.StatusNotFound, dto.CodeNotFound, err.Error())

	case repository.IsConflictError(err), errors.Is(err, entity.ErrInvalidStatusTransition):
		rs.fail(w, r, http.StatusConflict, dto.CodeConflict, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		rs.fail(w, r, http.StatusGatewayTimeout, dto.CodeTimeout, "request timed out")

	default:
		rs.log.WithContext(r.Context()).Error("request failed",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		rs.fail(w, r, http.StatusInternalServerError, dto.CodeInternal, "an unexpected error occurred")
	}
}
