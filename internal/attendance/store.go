package attendance

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

// Upsert: employee_id + date（UNIQUE）でINSERTまたはUPDATE。
// 近接した2回の申告でも行は1つのまま、後勝ちになる。
// - 新規: RowsAffected = 1
// - 既存更新: RowsAffected = 2
func (s *Store) Upsert(ctx context.Context, employeeID, day string, status Status, now time.Time) (Attendance, bool, error) {
	const q = `
	INSERT INTO attendance (employee_id, ` + "`date`" + `, status, check_in_time)
	VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
	status        = VALUES(status),
	check_in_time = VALUES(check_in_time)`

	res, err := s.db.ExecContext(ctx, q, employeeID, day, string(status), now)
	if err != nil {
		return Attendance{}, false, err
	}
	aff, _ := res.RowsAffected()
	created := (aff == 1)

	// 最終行を取得（UNIQUEキーで）
	row, err := s.FindByDay(ctx, employeeID, day)
	if err != nil {
		return Attendance{}, created, err
	}
	if row == nil {
		return Attendance{}, created, ErrUnavailable("inserted but not found")
	}
	return *row, created, nil
}

// FindByDay: 指定従業員の指定日の行。無ければ (nil, nil)。
func (s *Store) FindByDay(ctx context.Context, employeeID, day string) (*Attendance, error) {
	const q = `
	SELECT attendance_id, employee_id, DATE_FORMAT(` + "`date`" + `, '%Y-%m-%d') AS date, status, check_in_time
	FROM attendance
	WHERE employee_id = ? AND ` + "`date`" + ` = ?
	LIMIT 1`

	var r attendanceRow
	err := s.db.QueryRowContext(ctx, q, employeeID, day).Scan(
		&r.AttendanceID, &r.EmployeeID, &r.Date, &r.Status, &r.CheckInTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// Recent: 日付降順で limit 件
func (s *Store) Recent(ctx context.Context, employeeID string, limit int) ([]Attendance, error) {
	const q = `
	SELECT attendance_id, employee_id, DATE_FORMAT(` + "`date`" + `, '%Y-%m-%d') AS date, status, check_in_time
	FROM attendance
	WHERE employee_id = ?
	ORDER BY ` + "`date`" + ` DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(&r.AttendanceID, &r.EmployeeID, &r.Date, &r.Status, &r.CheckInTime); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}
