package events

import "time"

const LogsheetDecidedTopic = "worklog.logsheet.decided.v1"

type LogsheetDecidedEvent struct {
	EventType     string    `json:"event_type"`
	LogsheetID    string    `json:"logsheet_id"`
	EmployeeID    string    `json:"employee_id"`
	WorkDate      string    `json:"work_date"`
	Status        string    `json:"status"`
	WorkDayCredit float64   `json:"work_day_credit"`
	DecidedBy     string    `json:"decided_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
