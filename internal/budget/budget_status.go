package budget

// ApprovalStatus drives the budget approval workflow. It only ever advances:
// DRAFT -> WAITING_APPROVAL -> APPROVED or REJECTED. There is no way back,
// and no operation writes it outside the guarded workflow transitions.
type ApprovalStatus string

const (
	ApprovalDraft    ApprovalStatus = "DRAFT"
	ApprovalWaiting  ApprovalStatus = "WAITING_APPROVAL"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalDraft, ApprovalWaiting, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Decided reports whether the workflow has reached a terminal decision.
func (s ApprovalStatus) Decided() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// BudgetStatus tracks the disbursement stage. It may only reach APPROVED
// once the approval workflow itself has approved the budget, and RELEASED
// only from APPROVED.
type BudgetStatus string

const (
	StatusDraft    BudgetStatus = "DRAFT"
	StatusApproved BudgetStatus = "APPROVED"
	StatusReleased BudgetStatus = "RELEASED"
)

func (s BudgetStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusReleased:
		return true
	}
	return false
}
