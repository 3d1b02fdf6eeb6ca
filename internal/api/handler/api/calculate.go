// internal/api/handler/api/calculate.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/natal/internal/api/response"
	"github.com/newthinker/natal/internal/chart"
	"github.com/newthinker/natal/internal/core"
	"go.uber.org/zap"
)

// maxBodyBytes bounds the request body; a chart request is a few dozen bytes.
const maxBodyBytes = 1 << 16

// Calculator defines the interface needed from chart.Service.
type Calculator interface {
	Calculate(ctx context.Context, req chart.Request) (*core.Chart, error)
}

// CalculateRequest is the request body for a chart calculation. Fields are
// pointers so an absent field is told apart from a zero value.
type CalculateRequest struct {
	Year      *int     `json:"year" validate:"required"`
	Month     *int     `json:"month" validate:"required"`
	Day       *int     `json:"day" validate:"required"`
	Hour      *int     `json:"hour" validate:"required"`
	Minute    *int     `json:"minute" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required"`
}

// ChartRequest converts a validated body into a chart request.
func (r CalculateRequest) ChartRequest() chart.Request {
	return chart.Request{
		Year:      *r.Year,
		Month:     *r.Month,
		Day:       *r.Day,
		Hour:      *r.Hour,
		Minute:    *r.Minute,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}
}

// CalculateHandler handles chart calculation requests.
type CalculateHandler struct {
	calc     Calculator
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCalculateHandler creates a new calculate handler.
func NewCalculateHandler(calc Calculator, logger *zap.Logger) *CalculateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculateHandler{
		calc:     calc,
		validate: validator.New(),
		logger:   logger,
	}
}

// ServeHTTP dispatches on method: OPTIONS answers the preflight, POST
// calculates, anything else is rejected.
func (h *CalculateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		h.Calculate(w, r)
	default:
		response.Error(w, http.StatusMethodNotAllowed, core.ErrMethodNotAllowed)
	}
}

// Calculate decodes the birth data and returns the chart.
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if dec.More() {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidRequest, errors.New("unexpected data after JSON body")))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrMissingParameters, err))
		return
	}

	result, err := h.calc.Calculate(r.Context(), req.ChartRequest())
	if err != nil {
		h.logger.Warn("chart calculation failed",
			zap.Error(err),
			zap.Int("year", *req.Year),
			zap.Int("month", *req.Month),
			zap.Int("day", *req.Day),
			zap.Float64("latitude", *req.Latitude),
			zap.Float64("longitude", *req.Longitude),
		)
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
