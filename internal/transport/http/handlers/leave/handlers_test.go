package leavehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/transport/http/middleware"
)

type memStore struct {
	leaves map[string]leave.Leave
	nextID int
}

func newMemStore() *memStore {
	return &memStore{leaves: map[string]leave.Leave{}}
}

func (m *memStore) Create(_ context.Context, payload leave.Leave) (leave.Leave, error) {
	m.nextID++
	payload.ID = fmt.Sprintf("leave-%d", m.nextID)
	payload.CreatedAt = time.Now()
	m.leaves[payload.ID] = payload
	return payload, nil
}

func (m *memStore) Get(_ context.Context, id string) (leave.Leave, error) {
	l, ok := m.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrNotFound
	}
	return l, nil
}

func (m *memStore) ListByEmployee(_ context.Context, employeeID string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range m.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) ListInRange(_ context.Context, start, end time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range m.leaves {
		if leave.Overlaps(l.StartDate, l.EndDate, start, end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, payload leave.Leave) (leave.Leave, error) {
	if _, ok := m.leaves[payload.ID]; !ok {
		return leave.Leave{}, leave.ErrNotFound
	}
	m.leaves[payload.ID] = payload
	return payload, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.leaves[id]; !ok {
		return leave.ErrNotFound
	}
	delete(m.leaves, id)
	return nil
}

func (m *memStore) HasOverlap(_ context.Context, employeeID string, start, end time.Time, excludeLeaveID string) (bool, error) {
	for _, l := range m.leaves {
		if l.EmployeeID != employeeID || l.ID == excludeLeaveID {
			continue
		}
		if leave.Overlaps(l.StartDate, l.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

type userStore struct {
	users map[string]auth.User
}

func (u *userStore) FindByUsername(_ context.Context, username string) (auth.User, error) {
	user, ok := u.users[username]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (u *userStore) Create(_ context.Context, username, passwordHash, role string) (auth.User, error) {
	user := auth.User{ID: username, Username: username, PasswordHash: passwordHash, Role: role, Enabled: true}
	u.users[username] = user
	return user, nil
}

func (u *userStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, ok := u.users[username]
	return ok, nil
}

func (u *userStore) SetEnabled(_ context.Context, username string, enabled bool) error {
	user, ok := u.users[username]
	if !ok {
		return auth.ErrUserNotFound
	}
	user.Enabled = enabled
	u.users[username] = user
	return nil
}

type client struct {
	srv   *httptest.Server
	token string
}

func newTestClient(t *testing.T) client {
	t.Helper()

	authSvc := &auth.Service{
		Store:  &userStore{users: map[string]auth.User{}},
		Tokens: auth.NewTokenService("dGVzdC1zZWNyZXQ=", time.Hour),
	}
	session, err := authSvc.Register(context.Background(), "worker", "password123", auth.RoleUser)
	if err != nil {
		t.Fatalf("register worker: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.Auth(authSvc))
	NewHandler(leave.NewService(newMemStore())).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client{srv: srv, token: session.Token}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c client) do(t *testing.T, method, path string, payload any) (*http.Response, envelope) {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.srv.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

func leavePayloadFor(employeeID, start, end string) map[string]string {
	return map[string]string{
		"employeeId": employeeID,
		"startDate":  start,
		"endDate":    end,
		"type":       leave.TypeVacation,
	}
}

func TestCreateAndConflict(t *testing.T) {
	c := newTestClient(t)

	resp, env := c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-01", "2024-12-05"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", resp.StatusCode, env.Error)
	}

	// [Dec 4, Dec 10] intersects [Dec 1, Dec 5].
	resp, env = c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-04", "2024-12-10"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "leave_conflict" {
		t.Fatalf("expected leave_conflict, got %+v", env.Error)
	}

	// [Dec 6, Dec 10] does not.
	resp, _ = c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-06", "2024-12-10"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for adjacent range, got %d", resp.StatusCode)
	}

	// Another employee can book the same dates.
	resp, _ = c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-2", "2024-12-01", "2024-12-05"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for other employee, got %d", resp.StatusCode)
	}
}

func TestCreateValidation(t *testing.T) {
	c := newTestClient(t)

	resp, env := c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-10", "2024-12-01"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}

	payload := leavePayloadFor("emp-1", "2024-12-01", "2024-12-05")
	payload["type"] = "SABBATICAL"
	resp, _ = c.do(t, http.MethodPost, "/leaves", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", resp.StatusCode)
	}

	payload = leavePayloadFor("", "2024-12-01", "2024-12-05")
	resp, _ = c.do(t, http.MethodPost, "/leaves", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing employee, got %d", resp.StatusCode)
	}
}

func TestUpdateExcludesSelf(t *testing.T) {
	c := newTestClient(t)

	_, env := c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-01", "2024-12-05"))
	var created leave.Leave
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}

	// Shifting its own range must not conflict with itself.
	resp, env := c.do(t, http.MethodPut, "/leaves/"+created.ID, leavePayloadFor("emp-1", "2024-12-02", "2024-12-06"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%+v)", resp.StatusCode, env.Error)
	}
	var updated leave.Leave
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode leave: %v", err)
	}
	if !updated.StartDate.Equal(time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start date %v", updated.StartDate)
	}

	resp, _ = c.do(t, http.MethodPut, "/leaves/missing", leavePayloadFor("emp-1", "2024-12-02", "2024-12-06"))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCancelFreesRange(t *testing.T) {
	c := newTestClient(t)

	_, env := c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-01", "2024-12-05"))
	var created leave.Leave
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}

	resp, _ := c.do(t, http.MethodDelete, "/leaves/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, _ = c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-01", "2024-12-05"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("cancelled leave must free the range, got %d", resp.StatusCode)
	}

	resp, _ = c.do(t, http.MethodDelete, "/leaves/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for cancelled leave, got %d", resp.StatusCode)
	}
}

func TestListEndpoints(t *testing.T) {
	c := newTestClient(t)

	c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2024-12-01", "2024-12-05"))
	c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-1", "2025-01-10", "2025-01-12"))
	c.do(t, http.MethodPost, "/leaves", leavePayloadFor("emp-2", "2024-12-01", "2024-12-05"))

	resp, env := c.do(t, http.MethodGet, "/leaves/employee/emp-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var leaves []leave.Leave
	if err := json.Unmarshal(env.Data, &leaves); err != nil {
		t.Fatalf("decode leaves: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves for emp-1, got %d", len(leaves))
	}

	resp, env = c.do(t, http.MethodGet, "/leaves/range?startDate=2024-12-01&endDate=2024-12-31", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(env.Data, &leaves); err != nil {
		t.Fatalf("decode leaves: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves in December, got %d", len(leaves))
	}

	resp, _ = c.do(t, http.MethodGet, "/leaves/range?startDate=2024-12-31&endDate=2024-12-01", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", resp.StatusCode)
	}
}
