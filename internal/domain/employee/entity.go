package employee

import "time"

type Employee struct {
	ID         string
	UserID     *string
	FullName   string
	Department string
	Position   string
	Status     EmploymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
