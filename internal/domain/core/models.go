package core

import "time"

type Employee struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"departmentId"`
	RoleID       string    `json:"roleId"`
	HireDate     time.Time `json:"hireDate"`
	VacationDays int       `json:"vacationDays"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type JobRole struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// TakeVacation debits the ledger. The guard keeps the balance from ever
// going negative; the debit is all-or-nothing.
func (e *Employee) TakeVacation(days int) error {
	if days <= 0 {
		return ErrInvalidDays
	}
	if days > e.VacationDays {
		return ErrInsufficientBalance
	}
	e.VacationDays -= days
	return nil
}

// AddVacationDays credits the ledger. Non-positive amounts are ignored.
func (e *Employee) AddVacationDays(days int) {
	if days <= 0 {
		return
	}
	e.VacationDays += days
}
