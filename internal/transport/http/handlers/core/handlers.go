package corehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/core"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Delete("/{employeeID}", h.handleDeleteEmployee)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Put("/{employeeID}/vacation", h.handleTakeVacation)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Put("/{employeeID}/vacation/add", h.handleAddVacationDays)
	})

	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Delete("/{departmentID}", h.handleDeleteDepartment)
	})

	r.Route("/roles", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/", h.handleListJobRoles)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Post("/", h.handleCreateJobRole)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Delete("/{roleID}", h.handleDeleteJobRole)
	})
}

type employeePayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	DepartmentID string `json:"departmentId"`
	RoleID       string `json:"roleId"`
	HireDate     string `json:"hireDate"`
	VacationDays int    `json:"vacationDays"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	employees, err := h.Service.ListEmployees(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if missing := missingFields(payload); len(missing) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "required fields missing", missing, middleware.GetRequestID(r.Context()))
		return
	}
	hireDate, err := shared.ParseDate(payload.HireDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid hire date", middleware.GetRequestID(r.Context()))
		return
	}

	employee, err := h.Service.CreateEmployee(r.Context(), core.Employee{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		DepartmentID: payload.DepartmentID,
		RoleID:       payload.RoleID,
		HireDate:     hireDate,
		VacationDays: payload.VacationDays,
	})
	if err != nil {
		h.failCore(w, r, err, "failed to create employee")
		return
	}
	api.Created(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	hireDate, err := shared.ParseDate(payload.HireDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid hire date", middleware.GetRequestID(r.Context()))
		return
	}

	employee, err := h.Service.UpdateEmployee(r.Context(), core.Employee{
		ID:           chi.URLParam(r, "employeeID"),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		DepartmentID: payload.DepartmentID,
		RoleID:       payload.RoleID,
		HireDate:     hireDate,
	})
	if err != nil {
		h.failCore(w, r, err, "failed to update employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.failCore(w, r, err, "failed to delete employee")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTakeVacation(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(w, r)
	if !ok {
		return
	}

	balance, err := h.Service.TakeVacation(r.Context(), chi.URLParam(r, "employeeID"), days)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDays):
			api.Fail(w, http.StatusBadRequest, "invalid_days", "days must be positive", middleware.GetRequestID(r.Context()))
		case errors.Is(err, core.ErrInsufficientBalance):
			api.Fail(w, http.StatusBadRequest, "insufficient_balance", "not enough vacation days", middleware.GetRequestID(r.Context()))
		case errors.Is(err, core.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to debit vacation", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]int{"vacationDays": balance}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddVacationDays(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(w, r)
	if !ok {
		return
	}

	balance, err := h.Service.AddVacationDays(r.Context(), chi.URLParam(r, "employeeID"), days)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to credit vacation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"vacationDays": balance}, middleware.GetRequestID(r.Context()))
}

func missingFields(payload employeePayload) []string {
	var missing []string
	if payload.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if payload.LastName == "" {
		missing = append(missing, "lastName")
	}
	if payload.Email == "" {
		missing = append(missing, "email")
	}
	return missing
}

func parseDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	days, err := strconv.Atoi(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "days query parameter must be an integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return days, true
}

type departmentPayload struct {
	Name string `json:"name"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "name required", middleware.GetRequestID(r.Context()))
		return
	}
	department, err := h.Service.CreateDepartment(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, department, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentID")); err != nil {
		h.failCore(w, r, err, "failed to delete department")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type jobRolePayload struct {
	Title string `json:"title"`
}

func (h *Handler) handleListJobRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListJobRoles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list roles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateJobRole(w http.ResponseWriter, r *http.Request) {
	var payload jobRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "title required", middleware.GetRequestID(r.Context()))
		return
	}
	role, err := h.Service.CreateJobRole(r.Context(), payload.Title)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create role", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, role, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteJobRole(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteJobRole(r.Context(), chi.URLParam(r, "roleID")); err != nil {
		h.failCore(w, r, err, "failed to delete role")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failCore(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, core.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	case errors.Is(err, core.ErrDuplicateEmail):
		api.Fail(w, http.StatusConflict, "duplicate_resource", "email already in use", requestID)
	case errors.Is(err, core.ErrInvalidDays):
		api.Fail(w, http.StatusBadRequest, "invalid_days", "vacation days must not be negative", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal", fallback, requestID)
	}
}
