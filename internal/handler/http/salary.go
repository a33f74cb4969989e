package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	// Generation
	GenerateForPeriod(w http.ResponseWriter, r *http.Request)
	GenerateForEmployee(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)

	// Records
	GetSalary(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)

	// Remittance
	GetRemittance(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// ========== GENERATION ==========

func (h *salaryHandlerImpl) GenerateForPeriod(w http.ResponseWriter, r *http.Request) {
	var req salary.GeneratePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.GenerateForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary generation finished", result)
}

func (h *salaryHandlerImpl) GenerateForEmployee(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEmployeeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.GenerateForEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary generated", result)
}

func (h *salaryHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEmployeeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func decodeEmployeeRequest(w http.ResponseWriter, r *http.Request) (salary.GenerateEmployeeRequest, bool) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return salary.GenerateEmployeeRequest{}, false
	}

	var req salary.GenerateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return salary.GenerateEmployeeRequest{}, false
	}
	if period := r.URL.Query().Get("period"); period != "" && req.Period == "" {
		req.Period = period
	}
	req.EmployeeID = employeeID
	return req, true
}

// ========== RECORDS ==========

func (h *salaryHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	result, err := h.salaryService.GetSalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	filter := salary.SalaryFilter{
		Page:   1,
		Limit:  20,
		Period: r.URL.Query().Get("period"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.salaryService.ListSalaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *salaryHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	var req salary.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.salaryService.UpdateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record updated", result)
}

// ========== REMITTANCE ==========

func (h *salaryHandlerImpl) GetRemittance(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.GetRemittance(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
