package credit

type BalanceResponse struct {
	EmployeeID  string  `json:"employee_id"`
	TotalCredit float64 `json:"total_credit"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}
