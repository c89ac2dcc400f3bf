package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return PayrollHandler{payrollService: payrollService}
}

// Generate runs batch generation for a pay period.
// POST /api/v1/payroll/generate
func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	report, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// GetRecord returns one payroll record.
// GET /api/v1/payroll/records/{id}
func (h *PayrollHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// ListRecords lists a period's records with optional filters.
// GET /api/v1/payroll/periods/{periodID}/records
func (h *PayrollHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	var filter payroll.RecordFilter
	query := r.URL.Query()
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := query.Get("status"); v != "" {
		status := payroll.RecordStatus(v)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.payrollService.ListRecords(r.Context(), periodID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// GetSummary returns the period's aggregate totals.
// GET /api/v1/payroll/periods/{periodID}/summary
func (h *PayrollHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	summary, err := h.payrollService.GetSummary(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
