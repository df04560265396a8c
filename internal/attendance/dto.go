package attendance

import "time"

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
	DateLayout         = "2006-01-02"
)

type SubmitAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Status     string `json:"status" binding:"required"` // "present" | "absent"
}

type AttendanceResponse struct {
	AttendanceID uint64    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Status       Status    `json:"status"`
	CheckInTime  time.Time `json:"check_in_time"`
}
