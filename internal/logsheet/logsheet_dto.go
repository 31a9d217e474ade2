package logsheet

type SubmitLogsheetRequest struct {
	JiraKey string `json:"jira_key" binding:"required"`
}

type DecisionRequest struct {
	Action        string   `json:"action" binding:"required,oneof=approve reject"`
	WorkDayCredit *float64 `json:"work_day_credit"`
}

type LogsheetResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	WorkDate      string  `json:"work_date"`
	JiraKey       string  `json:"jira_key"`
	HoursWorked   float64 `json:"hours_worked"`
	Status        string  `json:"status"`
	WorkDayCredit float64 `json:"work_day_credit"`
	DecidedBy     *string `json:"decided_by,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
	DecidedAt     *string `json:"decided_at,omitempty"`
}

type SubmissionStatusResponse struct {
	WorkDate     string `json:"work_date"`
	HasSubmitted bool   `json:"has_submitted"`
}
