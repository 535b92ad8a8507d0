package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermUser)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/range", h.handleListInRange)
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/employee/{employeeID}", h.handleListByEmployee)
		r.With(middleware.RequirePermission(auth.PermUser)).Get("/{leaveID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermUser)).Put("/{leaveID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermUser)).Delete("/{leaveID}", h.handleCancel)
	})
}

type leavePayload struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload leavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId required", middleware.GetRequestID(r.Context()))
		return
	}
	start, end, ok := parseRange(w, r, payload.StartDate, payload.EndDate)
	if !ok {
		return
	}

	created, err := h.Service.CreateRequest(r.Context(), payload.EmployeeID, start, end, payload.Type)
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.Service.Get(r.Context(), chi.URLParam(r, "leaveID"))
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Service.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, leaves, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListInRange(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if !ok {
		return
	}

	leaves, err := h.Service.ListInRange(r.Context(), start, end)
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, leaves, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload leavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	start, end, ok := parseRange(w, r, payload.StartDate, payload.EndDate)
	if !ok {
		return
	}

	updated, err := h.Service.UpdateRequest(r.Context(), chi.URLParam(r, "leaveID"), start, end, payload.Type)
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "leaveID")); err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "cancelled"}, middleware.GetRequestID(r.Context()))
}

func parseRange(w http.ResponseWriter, r *http.Request, rawStart, rawEnd string) (time.Time, time.Time, bool) {
	requestID := middleware.GetRequestID(r.Context())
	start, err := shared.ParseDate(rawStart)
	if err != nil || start.IsZero() {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid startDate", requestID)
		return time.Time{}, time.Time{}, false
	}
	end, err := shared.ParseDate(rawEnd)
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid endDate", requestID)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) failLeave(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave not found", requestID)
	case errors.Is(err, leave.ErrLeaveConflict):
		api.Fail(w, http.StatusBadRequest, "leave_conflict", "leave overlaps an existing request", requestID)
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "validation_error", "endDate must not precede startDate", requestID)
	case errors.Is(err, leave.ErrInvalidType):
		api.Fail(w, http.StatusBadRequest, "validation_error", "unknown leave type", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal", "leave operation failed", requestID)
	}
}
