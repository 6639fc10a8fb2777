package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	UserID        *string
	Name          string
	Role          string
	Email         string
	Status        EmploymentStatus
	Photo         *string
	DateOfJoining *time.Time
	Salary        *decimal.Decimal
	LeaveQuota    int
	UsedDays      int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "Active"
	EmploymentStatusInactive EmploymentStatus = "Inactive"
)

func (s EmploymentStatus) Valid() bool {
	return s == EmploymentStatusActive || s == EmploymentStatusInactive
}
