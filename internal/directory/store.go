package directory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"florina-backend/internal/platform/db"
)

// MySQLのUNIQUE制約違反
const dupEntryErrNo = 1062

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const employeeColumns = `employee_id, employee_number, name, password_hash, last_login, created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeNumber,
		&e.Name,
		&e.PasswordHash,
		&e.LastLogin,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// 見つからない場合は (nil, nil)。存在判定は呼び出し側で行う。
func (s *Store) FindByNumber(ctx context.Context, number string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT `+employeeColumns+`
	FROM employees
	WHERE employee_number = ?
	LIMIT 1`, number)
	return scanEmployee(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT `+employeeColumns+`
	FROM employees
	WHERE employee_id = ?
	LIMIT 1`, id)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT `+employeeColumns+`
	FROM employees
	ORDER BY employee_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0, 16)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeNumber, &e.Name, &e.PasswordHash, &e.LastLogin, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Insert は UNIQUE(employee_number) 違反を ErrDuplicateNumber に写す。
// 事前チェックが通っていても同時登録でここに来ることがある。
func (s *Store) Insert(ctx context.Context, e *Employee) error {
	const q = `
	INSERT INTO employees (employee_id, employee_number, name, password_hash, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, e.ID, e.EmployeeNumber, e.Name, e.PasswordHash, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == dupEntryErrNo {
			return ErrDuplicateNumber
		}
		return err
	}
	return nil
}

func (s *Store) UpdateName(ctx context.Context, id, name string, now time.Time) (int64, error) {
	const q = `UPDATE employees SET name = ?, updated_at = ? WHERE employee_id = ?`
	res, err := s.db.ExecContext(ctx, q, name, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string, now time.Time) (int64, error) {
	const q = `UPDATE employees SET password_hash = ?, updated_at = ? WHERE employee_id = ?`
	res, err := s.db.ExecContext(ctx, q, hash, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// 認証成功時のベストエフォート書き込み。updated_at は触らない。
func (s *Store) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE employees SET last_login = ? WHERE employee_id = ?`
	_, err := s.db.ExecContext(ctx, q, at, id)
	return err
}

// Delete は従業員に紐づく勤怠行ごと1トランザクションで消す。
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64
	err := db.RunInTx(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE employee_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
