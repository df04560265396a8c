package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ===== Error model (directory/registration と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnavailable     Code = "UNAVAILABLE"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrUnavailable(msg string) *APIError {
	return &APIError{Code: CodeUnavailable, Message: msg}
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		default:
			return 503
		}
	}
	return 503
}

// ===== Store abstraction =====

// LedgerStore は勤怠台帳の永続化層。Upsertは (employee_id, date) をキーに
// ストア側でアトミックに挿入または上書きすること。
type LedgerStore interface {
	Upsert(ctx context.Context, employeeID, day string, status Status, now time.Time) (Attendance, bool, error)
	FindByDay(ctx context.Context, employeeID, day string) (*Attendance, error)
	Recent(ctx context.Context, employeeID string, limit int) ([]Attendance, error)
}

// ===== Service =====

type Service struct {
	store LedgerStore
	now   func() time.Time
}

func NewService(db *sql.DB) *Service {
	return newService(NewStore(db))
}

func newService(store LedgerStore) *Service {
	return &Service{
		store: store,
		// 日付境界は全セッションでUTCに固定する
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Submit は「今日」の勤怠を申告する。既に行があれば status と check_in_time を
// 上書きし、2行目は決して作らない。同日の再申告は回数無制限。
// 返り値: 確定行、created=true（新規）/false（上書き）
func (s *Service) Submit(ctx context.Context, in SubmitAttendanceRequest) (AttendanceResponse, bool, error) {
	if in.EmployeeID == "" {
		return AttendanceResponse{}, false, ErrInvalid("employee_id is required")
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return AttendanceResponse{}, false, ErrInvalid("status must be 'present' or 'absent'")
	}

	now := s.now()
	day := now.Format(DateLayout)

	row, created, err := s.store.Upsert(ctx, in.EmployeeID, day, status, now)
	if err != nil {
		return AttendanceResponse{}, false, err
	}
	return row.toDTO(), created, nil
}

// Today は (employee_id, 今日) の行を返す。無ければ nil。
func (s *Service) Today(ctx context.Context, employeeID string) (*AttendanceResponse, error) {
	if employeeID == "" {
		return nil, ErrInvalid("employee_id is required")
	}

	day := s.now().Format(DateLayout)
	row, err := s.store.FindByDay(ctx, employeeID, day)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	res := row.toDTO()
	return &res, nil
}

// Recent は日付降順の履歴を limit 件まで返す。再取得はクエリし直し。
func (s *Service) Recent(ctx context.Context, employeeID string, limit int) ([]AttendanceResponse, error) {
	if employeeID == "" {
		return nil, ErrInvalid("employee_id is required")
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rows, err := s.store.Recent(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}
