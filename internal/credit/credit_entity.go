package credit

import (
	"time"

	"github.com/google/uuid"
)

// CreditEntry records one approved logsheet's contribution. The logsheet
// id is the primary key, so replaying the same decision event is a no-op
// unique violation instead of a double credit.
type CreditEntry struct {
	LogsheetID    uuid.UUID `gorm:"column:logsheet_id;type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate      time.Time `gorm:"column:work_date;type:date;not null"`
	WorkDayCredit float64   `gorm:"column:work_day_credit;not null"`
	DecidedBy     uuid.UUID `gorm:"column:decided_by;type:uuid"`
	CreatedAt     time.Time
}

func (CreditEntry) TableName() string {
	return "credit_entries"
}

type CreditLedger struct {
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;primaryKey"`
	TotalCredit float64   `gorm:"column:total_credit;not null;default:0"`
	UpdatedAt   time.Time
}

func (CreditLedger) TableName() string {
	return "credit_ledgers"
}
