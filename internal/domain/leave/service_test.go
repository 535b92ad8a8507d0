package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type memStore struct {
	leaves map[string]Leave
	nextID int
}

func newMemStore() *memStore {
	return &memStore{leaves: map[string]Leave{}}
}

func (m *memStore) Create(_ context.Context, payload Leave) (Leave, error) {
	m.nextID++
	payload.ID = fmt.Sprintf("leave-%d", m.nextID)
	payload.CreatedAt = time.Now()
	m.leaves[payload.ID] = payload
	return payload, nil
}

func (m *memStore) Get(_ context.Context, id string) (Leave, error) {
	l, ok := m.leaves[id]
	if !ok {
		return Leave{}, ErrNotFound
	}
	return l, nil
}

func (m *memStore) ListByEmployee(_ context.Context, employeeID string) ([]Leave, error) {
	var out []Leave
	for _, l := range m.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) ListInRange(_ context.Context, start, end time.Time) ([]Leave, error) {
	var out []Leave
	for _, l := range m.leaves {
		if Overlaps(l.StartDate, l.EndDate, start, end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, payload Leave) (Leave, error) {
	if _, ok := m.leaves[payload.ID]; !ok {
		return Leave{}, ErrNotFound
	}
	m.leaves[payload.ID] = payload
	return payload, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.leaves[id]; !ok {
		return ErrNotFound
	}
	delete(m.leaves, id)
	return nil
}

func (m *memStore) HasOverlap(_ context.Context, employeeID string, start, end time.Time, excludeLeaveID string) (bool, error) {
	for _, l := range m.leaves {
		if l.EmployeeID != employeeID || l.ID == excludeLeaveID {
			continue
		}
		if Overlaps(l.StartDate, l.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateRequestOverlap(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	existing, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), TypeVacation)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 4), day(2024, 12, 10), TypeVacation); !errors.Is(err, ErrLeaveConflict) {
		t.Fatalf("expected ErrLeaveConflict, got %v", err)
	}

	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 6), day(2024, 12, 10), TypeSick); err != nil {
		t.Fatalf("adjacent range should not conflict: %v", err)
	}

	// Another employee may hold the same dates.
	if _, err := svc.CreateRequest(ctx, "emp-2", day(2024, 12, 1), day(2024, 12, 5), TypeVacation); err != nil {
		t.Fatalf("different employee should not conflict: %v", err)
	}

	// Updating a leave to its own range must not conflict with itself.
	if _, err := svc.UpdateRequest(ctx, existing.ID, existing.StartDate, existing.EndDate, TypeUnpaid); err != nil {
		t.Fatalf("self-exclusion update failed: %v", err)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 5), day(2024, 12, 1), TypeVacation); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), "HOLIDAY"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestSingleDayLeaveParticipates(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 3), day(2024, 12, 3), TypeSick); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), TypeVacation); !errors.Is(err, ErrLeaveConflict) {
		t.Fatalf("expected single-day leave to conflict, got %v", err)
	}
}

func TestCancelFreesRange(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), TypeVacation)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), TypeVacation); err != nil {
		t.Fatalf("cancelled leave must not block new requests: %v", err)
	}

	if err := svc.Cancel(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListInRange(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if _, err := svc.CreateRequest(ctx, "emp-1", day(2024, 12, 1), day(2024, 12, 5), TypeVacation); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.CreateRequest(ctx, "emp-2", day(2025, 1, 10), day(2025, 1, 12), TypeSick); err != nil {
		t.Fatalf("create error: %v", err)
	}

	got, err := svc.ListInRange(ctx, day(2024, 12, 1), day(2024, 12, 31))
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 leave in December, got %d", len(got))
	}

	if _, err := svc.ListInRange(ctx, day(2024, 12, 31), day(2024, 12, 1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
