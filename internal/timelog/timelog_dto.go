package timelog

type TimeEventResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	Kind       string `json:"kind"`
	RecordedAt string `json:"recorded_at"`
}

type ActionResponse struct {
	EmployeeID string            `json:"employee_id"`
	WorkDate   string            `json:"work_date"`
	Status     string            `json:"status"`
	Event      TimeEventResponse `json:"event"`
}

type StatusResponse struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	Status     string `json:"status"`
}

type DayDetailResponse struct {
	EmployeeID  string              `json:"employee_id"`
	WorkDate    string              `json:"work_date"`
	Status      string              `json:"status"`
	Events      []TimeEventResponse `json:"events"`
	HoursWorked float64             `json:"hours_worked"`
	Provisional bool                `json:"provisional"`
	Clamped     bool                `json:"clamped,omitempty"`
}
