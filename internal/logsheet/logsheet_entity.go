package logsheet

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Logsheet is one employee's end-of-day submission. The unique index on
// (employee_id, work_date) enforces at most one logsheet per day; the
// status only ever moves PENDING -> APPROVED or PENDING -> REJECTED and
// rows are never deleted.
type Logsheet struct {
	ID            uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_logsheets_employee_date"`
	WorkDate      time.Time    `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_logsheets_employee_date"`
	JiraKey       string       `gorm:"column:jira_key;type:varchar(255);not null"`
	HoursWorked   float64      `gorm:"column:hours_worked;not null;default:0"`
	Status        string       `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	WorkDayCredit float64      `gorm:"column:work_day_credit;not null;default:0"`
	DecidedBy     *uuid.UUID   `gorm:"column:decided_by;type:uuid"`
	SubmittedAt   time.Time    `gorm:"column:submitted_at;type:timestamptz;not null"`
	DecidedAt     *time.Time   `gorm:"column:decided_at;type:timestamptz"`
	Employee      *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Logsheet) TableName() string {
	return "logsheets"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
