package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/validate", h.handleValidate)
	r.Get("/auth/check-username/{username}", h.handleCheckUsername)
	r.With(middleware.RequirePermission(auth.PermAdmin)).Put("/auth/users/{username}/enabled", h.handleSetEnabled)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "password required", middleware.GetRequestID(r.Context()))
		return
	}
	role := payload.Role
	if role == "" {
		role = auth.RoleUser
	}

	session, err := h.Service.Register(r.Context(), payload.Username, payload.Password, role)
	if err != nil {
		h.failAuth(w, r, err)
		return
	}
	api.Created(w, session, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	session, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		// Missing accounts and bad passwords look identical to the caller.
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, session, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	token := bearerOrQueryToken(r)
	if token == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "token required", middleware.GetRequestID(r.Context()))
		return
	}

	identity, err := h.Service.ValidateToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrUserNotFound):
			api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "internal", "token validation failed", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, identity, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	available, err := h.Service.CheckUsername(r.Context(), username)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "username check failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"available": available}, middleware.GetRequestID(r.Context()))
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var payload setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.Service.SetUserEnabled(r.Context(), username, payload.Enabled); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"enabled": payload.Enabled}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failAuth(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		api.Fail(w, http.StatusConflict, "duplicate_resource", "username already taken", requestID)
	case errors.Is(err, auth.ErrInvalidUsername):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal", "registration failed", requestID)
	}
}

func bearerOrQueryToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && (authHeader[:7] == "Bearer " || authHeader[:7] == "bearer ") {
		return authHeader[7:]
	}
	return r.URL.Query().Get("token")
}
