package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const leaveColumns = "id, employee_id, start_date, end_date, leave_type, created_at"

func scanLeave(row pgx.Row) (Leave, error) {
	var l Leave
	err := row.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Type, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Leave{}, ErrNotFound
	}
	if err != nil {
		return Leave{}, err
	}
	return l, nil
}

func (s *Store) Create(ctx context.Context, payload Leave) (Leave, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, start_date, end_date, leave_type)
    VALUES ($1,$2,$3,$4)
    RETURNING `+leaveColumns,
		payload.EmployeeID, payload.StartDate, payload.EndDate, payload.Type)
	return scanLeave(row)
}

func (s *Store) Get(ctx context.Context, id string) (Leave, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+leaveColumns+" FROM leaves WHERE id = $1", id)
	return scanLeave(row)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+leaveColumns+" FROM leaves WHERE employee_id = $1 ORDER BY start_date", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func (s *Store) ListInRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+leaveColumns+`
    FROM leaves
    WHERE start_date <= $2 AND end_date >= $1
    ORDER BY start_date
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func (s *Store) Update(ctx context.Context, payload Leave) (Leave, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE leaves
    SET start_date = $2, end_date = $3, leave_type = $4
    WHERE id = $1
    RETURNING `+leaveColumns,
		payload.ID, payload.StartDate, payload.EndDate, payload.Type)
	return scanLeave(row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leaves WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasOverlap uses closed-interval intersection: an existing leave
// conflicts when existing.start <= end AND existing.end >= start.
func (s *Store) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeLeaveID string) (bool, error) {
	query := `
    SELECT COUNT(1)
    FROM leaves
    WHERE employee_id = $1 AND start_date <= $3 AND end_date >= $2
  `
	args := []any{employeeID, start, end}
	if excludeLeaveID != "" {
		query += " AND id != $4"
		args = append(args, excludeLeaveID)
	}

	var count int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func collectLeaves(rows pgx.Rows) ([]Leave, error) {
	var leaves []Leave
	for rows.Next() {
		var l Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Type, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}
