package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, payload Leave) (Leave, error)
	Get(ctx context.Context, id string) (Leave, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]Leave, error)
	Update(ctx context.Context, payload Leave) (Leave, error)
	Delete(ctx context.Context, id string) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeLeaveID string) (bool, error)
}
