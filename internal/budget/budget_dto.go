package budget

type CreateBudgetRequest struct {
	BudgetPeriodStart string `json:"budget_period_start" binding:"required"`
	BudgetPeriodEnd   string `json:"budget_period_end" binding:"required"`
}

type DecisionRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

type BudgetResponse struct {
	ID         string `json:"id"`
	BudgetName string `json:"budget_name"`

	BudgetPeriodStart string `json:"budget_period_start"`
	BudgetPeriodEnd   string `json:"budget_period_end"`

	TotalEmployees  int     `json:"total_employees"`
	TotalGrossPay   float64 `json:"total_gross_pay"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNetPay     float64 `json:"total_net_pay"`

	BudgetStatus   string `json:"budget_status"`
	ApprovalStatus string `json:"approval_status"`

	SubmittedForApprovalAt *string `json:"submitted_for_approval_at,omitempty"`
	ApprovedAt             *string `json:"approved_at,omitempty"`
	ApprovedBy             *string `json:"approved_by,omitempty"`
	ApproverNotes          string  `json:"approver_notes,omitempty"`

	CreatedBy string `json:"created_by"`
}

// BudgetMemberResponse is one included payroll record with the amounts as
// they were at aggregation time.
type BudgetMemberResponse struct {
	PayrollRecordID string  `json:"payroll_record_id"`
	GrossPay        float64 `json:"gross_pay"`
	TotalDeductions float64 `json:"total_deductions"`
	NetPay          float64 `json:"net_pay"`
}

type BudgetDetailResponse struct {
	BudgetResponse
	Members []BudgetMemberResponse `json:"members"`
}

// WorkflowResponse reports a guarded workflow transition. Affected is 0 when
// the budget was not in an eligible state; the call is then a no-op.
type WorkflowResponse struct {
	ID             string `json:"id"`
	Affected       int64  `json:"affected"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	BudgetStatus   string `json:"budget_status,omitempty"`
	Message        string `json:"message,omitempty"`
}
