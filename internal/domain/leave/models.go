package leave

import "time"

const (
	TypeVacation = "VACATION"
	TypeSick     = "SICK"
	TypeUnpaid   = "UNPAID"
)

type Leave struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ValidType(t string) bool {
	switch t {
	case TypeVacation, TypeSick, TypeUnpaid:
		return true
	}
	return false
}
