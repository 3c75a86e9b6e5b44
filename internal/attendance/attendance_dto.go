package attendance

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type MarkDayRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT ABSENT LATE UNDERTIME HALF_DAY"`
	Minutes    int     `json:"minutes" binding:"gte=0"`
	Notes      *string `json:"notes"`
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	AttendanceDate   string  `json:"attendance_date"`
	ClockIn          *string `json:"clock_in,omitempty"`
	ClockOut         *string `json:"clock_out,omitempty"`
	Status           string  `json:"status"`
	LateMinutes      int     `json:"late_minutes"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	Notes            *string `json:"notes,omitempty"`
}
