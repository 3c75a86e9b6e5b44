package events

import "time"

const (
	SalaryReleasedTopic     = "payroll.salary.released.v1"
	SalaryReleasedEventType = "payroll.salary.released"
)

// SalaryReleasedEvent is emitted when a paid record moves to RELEASED. The
// payslip consumer picks it up and renders the payslip from the record's
// frozen snapshots.
type SalaryReleasedEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
