package core

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, payload Employee) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error)
	UpdateEmployee(ctx context.Context, payload Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	DebitVacation(ctx context.Context, id string, days int) (int, error)
	CreditVacation(ctx context.Context, id string, days int) (int, error)

	CreateDepartment(ctx context.Context, name string) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	DeleteDepartment(ctx context.Context, id string) error

	CreateJobRole(ctx context.Context, title string) (JobRole, error)
	ListJobRoles(ctx context.Context) ([]JobRole, error)
	DeleteJobRole(ctx context.Context, id string) error
}
