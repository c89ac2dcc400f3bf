package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	periodService "github.com/cmlabs-hris/payroll-engine-go/internal/service/period"
	"github.com/go-chi/chi/v5"
)

type PeriodHandler struct {
	periodService *periodService.PeriodService
}

func NewPeriodHandler(service *periodService.PeriodService) PeriodHandler {
	return PeriodHandler{periodService: service}
}

// Create registers a new pay period.
// POST /api/v1/payroll/periods
func (h *PeriodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.periodService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", created)
}

// List returns all pay periods, newest first.
// GET /api/v1/payroll/periods
func (h *PeriodHandler) List(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}

// Get returns one pay period.
// GET /api/v1/payroll/periods/{periodID}
func (h *PeriodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	p, err := h.periodService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, p)
}

// UpdateStatus advances the period through the approval workflow.
// PATCH /api/v1/payroll/periods/{periodID}/status
func (h *PeriodHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	var req period.UpdatePeriodStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.periodService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}
