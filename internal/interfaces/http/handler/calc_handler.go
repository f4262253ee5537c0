package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/usecase"
)

// msgAreaOutOfRange rejects areas that overflow a float64 and cannot be
// encoded as JSON.
const msgAreaOutOfRange = "area exceeds the representable range"

// CalcHandler serves the calculation, validation, cache and benchmark endpoints.
type CalcHandler struct {
	responder
	calc *usecase.CalculatorService
}

// NewCalcHandler creates a CalcHandler.
func NewCalcHandler(calc *usecase.CalculatorService, rs responder) *CalcHandler {
	return &CalcHandler{responder: rs, calc: calc}
}

// Routes mounts the calculator endpoints on r.
func (h *CalcHandler) Routes(r chi.Router) {
	r.Post("/calc/area", h.calculateArea)
	r.Post("/calc/areas", h.calculateAreas)

	r.Route("/money", func(r chi.Router) {
		r.Post("/parse", h.parseMoney)
		r.Get("/format", h.formatMoney)
		r.Post("/total", h.totalMoney)
		r.Post("/parse-number", h.parseNumber)
	})

	r.Route("/validate", func(r chi.Router) {
		r.Post("/dimensions", h.validateDimensions)
		r.Post("/money", h.validateMoney)
		r.Post("/ilhos", h.validateIlhos)
		r.Post("/cpf", h.validateCPF)
		r.Post("/email", h.validateEmail)
	})

	r.Post("/production/batch", h.processBatch)

	r.Route("/cache", func(r chi.Router) {
		r.Get("/", h.cacheStats)
		r.Delete("/", h.cacheClear)
		r.Get("/{key}", h.cacheGet)
		r.Put("/{key}", h.cacheSet)
		r.Delete("/{key}", h.cacheDelete)
	})

	r.Post("/benchmark", h.benchmark)
}

func (h *CalcHandler) calculateArea(w http.ResponseWriter, r *http.Request) {
	var req dto.AreaRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result := h.calc.CalculateArea(req.Width, req.Height)
	if math.IsInf(result.Area, 0) {
		h.handleError(w, r, usecase.NewValidationError("area", msgAreaOutOfRange))
		return
	}

	h.ok(w, r, http.StatusOK, result)
}

func (h *CalcHandler) calculateAreas(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchAreaRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	results, elapsed := h.calc.CalculateBatchAreas(r.Context(), req.Dimensions())
	verr := &usecase.ValidationError{}
	for i, res := range results {
		if math.IsInf(res.Area, 0) {
			verr.Add(fmt.Sprintf("items[%d]", i), msgAreaOutOfRange)
		}
	}
	if verr.HasErrors() {
		h.handleError(w, r, verr)
		return
	}

	h.ok(w, r, http.StatusOK, dto.BatchAreaResponse{
		Results:           results,
		Count:             len(results),
		CalculationTimeMs: elapsed.Milliseconds(),
	})
}

func (h *CalcHandler) parseMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.TextInputRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, h.calc.ParseMoney(req.Input))
}

func (h *CalcHandler) formatMoney(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("value"))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		h.fail(w, r, http.StatusBadRequest, dto.CodeBadRequest, "value must be a finite number")
		return
	}

	h.ok(w, r, http.StatusOK, dto.FormatMoneyResponse{
		Value:     value,
		Formatted: h.calc.FormatMoney(value),
	})
}

func (h *CalcHandler) totalMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.TotalMoneyRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, h.calc.TotalMoney(req.Values))
}

func (h *CalcHandler) parseNumber(w http.ResponseWriter, r *http.Request) {
	var req dto.TextInputRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.NumberResponse{Value: h.calc.ParseNumber(req.Input)})
}

func (h *CalcHandler) validateDimensions(w http.ResponseWriter, r *http.Request) {
	var req dto.AreaRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, h.calc.ValidateDimensions(req.Width, req.Height))
}

func (h *CalcHandler) validateMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.MoneyValidationRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, h.calc.ValidateMoney(req.Value))
}

func (h *CalcHandler) validateIlhos(w http.ResponseWriter, r *http.Request) {
	var req dto.IlhosRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, h.calc.ValidateIlhos(req.Quantity, req.UnitPrice, req.Spacing))
}

func (h *CalcHandler) validateCPF(w http.ResponseWriter, r *http.Request) {
	var req dto.CPFRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.ValidityResponse{Valid: h.calc.IsValidCPF(req.CPF)})
}

func (h *CalcHandler) validateEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.ValidityResponse{Valid: h.calc.IsValidEmail(req.Email)})
}

func (h *CalcHandler) processBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductionBatchRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.calc.ProcessBatch(r.Context(), req.Items)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, result)
}

func (h *CalcHandler) cacheStats(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, http.StatusOK, h.calc.CacheStats())
}

func (h *CalcHandler) cacheGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, ok := h.calc.CacheGet(key)
	if !ok {
		h.fail(w, r, http.StatusNotFound, dto.CodeNotFound, "cache key not found")
		return
	}

	h.ok(w, r, http.StatusOK, dto.CacheEntryResponse{Key: key, Value: value})
}

func (h *CalcHandler) cacheSet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req dto.CacheValueRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.calc.CacheSet(key, req.Value); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.CacheEntryResponse{Key: key, Value: req.Value})
}

func (h *CalcHandler) cacheDelete(w http.ResponseWriter, r *http.Request) {
	if !h.calc.CacheDelete(chi.URLParam(r, "key")) {
		h.fail(w, r, http.StatusNotFound, dto.CodeNotFound, "cache key not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CalcHandler) cacheClear(w http.ResponseWriter, r *http.Request) {
	h.calc.CacheClear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *CalcHandler) benchmark(w http.ResponseWriter, r *http.Request) {
	var req dto.BenchmarkRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.calc.RunBenchmark(r.Context(), req.Iterations)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, dto.BenchmarkResponse{
		Iterations: result.Iterations,
		AreaMs:     float64(result.AreaDuration.Microseconds()) / 1000,
		MoneyMs:    float64(result.MoneyDuration.Microseconds()) / 1000,
	})
}
