package leave

import (
	"context"
	"time"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func validateRange(start, end time.Time, leaveType string) error {
	if end.Before(start) {
		return ErrInvalidRange
	}
	if !ValidType(leaveType) {
		return ErrInvalidType
	}
	return nil
}

// CreateRequest rejects any leave whose inclusive date range intersects an
// existing leave for the same employee.
func (s *Service) CreateRequest(ctx context.Context, employeeID string, start, end time.Time, leaveType string) (Leave, error) {
	if err := validateRange(start, end, leaveType); err != nil {
		return Leave{}, err
	}

	conflict, err := s.Store.HasOverlap(ctx, employeeID, start, end, "")
	if err != nil {
		return Leave{}, err
	}
	if conflict {
		return Leave{}, ErrLeaveConflict
	}

	return s.Store.Create(ctx, Leave{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Type:       leaveType,
	})
}

// UpdateRequest re-runs the overlap check excluding the leave being
// updated, so an unchanged range does not conflict with itself.
func (s *Service) UpdateRequest(ctx context.Context, id string, start, end time.Time, leaveType string) (Leave, error) {
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if err := validateRange(start, end, leaveType); err != nil {
		return Leave{}, err
	}

	conflict, err := s.Store.HasOverlap(ctx, existing.EmployeeID, start, end, id)
	if err != nil {
		return Leave{}, err
	}
	if conflict {
		return Leave{}, ErrLeaveConflict
	}

	existing.StartDate = start
	existing.EndDate = end
	existing.Type = leaveType
	return s.Store.Update(ctx, existing)
}

func (s *Service) Get(ctx context.Context, id string) (Leave, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListInRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return s.Store.ListInRange(ctx, start, end)
}

// Cancel removes the leave; cancelled leaves no longer block new requests.
func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
