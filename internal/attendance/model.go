package attendance

import "time"

// Status は1日の勤怠状態。1日1行で、最後の申告が勝つ。
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPresent, StatusAbsent:
		return Status(s), true
	default:
		return "", false
	}
}

// DB行に対応（スキャン用）
type attendanceRow struct {
	AttendanceID uint64
	EmployeeID   string
	Date         string // DATE → "YYYY-MM-DD"
	Status       string
	CheckInTime  time.Time
}

// Service ↔ Store で使うモデル（必要最小限）
type Attendance struct {
	AttendanceID uint64
	EmployeeID   string
	Date         string
	Status       Status
	CheckInTime  time.Time
}

func (r attendanceRow) toModel() Attendance {
	return Attendance{
		AttendanceID: r.AttendanceID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date,
		Status:       Status(r.Status),
		CheckInTime:  r.CheckInTime.UTC(),
	}
}

func (a Attendance) toDTO() AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: a.AttendanceID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date,
		Status:       a.Status,
		CheckInTime:  a.CheckInTime,
	}
}
