package core

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) CreateEmployee(ctx context.Context, payload Employee) (Employee, error) {
	if payload.VacationDays < 0 {
		return Employee{}, ErrInvalidDays
	}
	return s.Store.CreateEmployee(ctx, payload)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, limit, offset)
}

func (s *Service) UpdateEmployee(ctx context.Context, payload Employee) (Employee, error) {
	return s.Store.UpdateEmployee(ctx, payload)
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.Store.DeleteEmployee(ctx, id)
}

// TakeVacation debits the employee's ledger and returns the new balance.
func (s *Service) TakeVacation(ctx context.Context, id string, days int) (int, error) {
	if days <= 0 {
		return 0, ErrInvalidDays
	}
	return s.Store.DebitVacation(ctx, id, days)
}

// AddVacationDays credits the ledger. Non-positive amounts leave the
// balance untouched and are not an error.
func (s *Service) AddVacationDays(ctx context.Context, id string, days int) (int, error) {
	if days <= 0 {
		employee, err := s.Store.GetEmployee(ctx, id)
		if err != nil {
			return 0, err
		}
		return employee.VacationDays, nil
	}
	return s.Store.CreditVacation(ctx, id, days)
}

func (s *Service) CreateDepartment(ctx context.Context, name string) (Department, error) {
	return s.Store.CreateDepartment(ctx, name)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.Store.ListDepartments(ctx)
}

func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.Store.DeleteDepartment(ctx, id)
}

func (s *Service) CreateJobRole(ctx context.Context, title string) (JobRole, error) {
	return s.Store.CreateJobRole(ctx, title)
}

func (s *Service) ListJobRoles(ctx context.Context) ([]JobRole, error) {
	return s.Store.ListJobRoles(ctx)
}

func (s *Service) DeleteJobRole(ctx context.Context, id string) error {
	return s.Store.DeleteJobRole(ctx, id)
}
