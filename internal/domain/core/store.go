package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = "id, first_name, last_name, email, department_id, role_id, hire_date, vacation_days, created_at"

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.DepartmentID, &e.RoleID, &e.HireDate, &e.VacationDays, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, payload Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, department_id, role_id, hire_date, vacation_days)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING `+employeeColumns,
		payload.FirstName, payload.LastName, payload.Email, payload.DepartmentID, payload.RoleID, payload.HireDate, payload.VacationDays)
	employee, err := scanEmployee(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	return scanEmployee(row)
}

func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY last_name, first_name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.DepartmentID, &e.RoleID, &e.HireDate, &e.VacationDays, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, payload Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, department_id = $5, role_id = $6, hire_date = $7
    WHERE id = $1
    RETURNING `+employeeColumns,
		payload.ID, payload.FirstName, payload.LastName, payload.Email, payload.DepartmentID, payload.RoleID, payload.HireDate)
	employee, err := scanEmployee(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DebitVacation decrements the balance with a conditional update so two
// concurrent debits cannot drive it negative.
func (s *Store) DebitVacation(ctx context.Context, id string, days int) (int, error) {
	var balance int
	err := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET vacation_days = vacation_days - $2
    WHERE id = $1 AND vacation_days >= $2
    RETURNING vacation_days
  `, id, days).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		if err := s.DB.QueryRow(ctx, "SELECT vacation_days FROM employees WHERE id = $1", id).Scan(&balance); err != nil {
			return 0, ErrNotFound
		}
		return balance, ErrInsufficientBalance
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Store) CreditVacation(ctx context.Context, id string, days int) (int, error) {
	var balance int
	err := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET vacation_days = vacation_days + $2
    WHERE id = $1
    RETURNING vacation_days
  `, id, days).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Store) CreateDepartment(ctx context.Context, name string) (Department, error) {
	var d Department
	err := s.DB.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id, name, created_at", name).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateJobRole(ctx context.Context, title string) (JobRole, error) {
	var r JobRole
	err := s.DB.QueryRow(ctx, "INSERT INTO job_roles (title) VALUES ($1) RETURNING id, title, created_at", title).
		Scan(&r.ID, &r.Title, &r.CreatedAt)
	if err != nil {
		return JobRole{}, err
	}
	return r, nil
}

func (s *Store) ListJobRoles(ctx context.Context) ([]JobRole, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, title, created_at FROM job_roles ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []JobRole
	for rows.Next() {
		var r JobRole
		if err := rows.Scan(&r.ID, &r.Title, &r.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *Store) DeleteJobRole(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM job_roles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
