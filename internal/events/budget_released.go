package events

import "time"

const (
	BudgetReleasedTopic     = "payroll.budget.released.v1"
	BudgetReleasedEventType = "payroll.budget.released"
)

// BudgetReleasedEvent announces that an approved budget was released and its
// member payroll records are cleared for disbursement.
type BudgetReleasedEvent struct {
	EventType  string    `json:"event_type"`
	BudgetID   string    `json:"budget_id"`
	BudgetName string    `json:"budget_name"`
	ReleasedBy string    `json:"released_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
