package timelog

import (
	"time"

	"github.com/google/uuid"
)

// TimeEvent is one entry of the append-only attendance journal. Rows are
// never updated or deleted; the current status is always derived from the
// ordered sequence of a day's events.
type TimeEvent struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_time_events_employee_date"`
	WorkDate   time.Time `gorm:"column:work_date;type:date;not null;index:idx_time_events_employee_date"`
	Kind       string    `gorm:"column:kind;type:varchar(20);not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;type:timestamptz;not null"`
}

func (TimeEvent) TableName() string {
	return "time_events"
}
