package directory

import (
	"database/sql"
	"time"
)

// Employee は employees テーブルの1行を表す
type Employee struct {
	ID             string // ULID
	EmployeeNumber string
	Name           string
	PasswordHash   sql.NullString // NULL = 資格情報なし（既定パスワード扱い）
	LastLogin      sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Credential は保存されている資格情報の生値を返す。NULLは空文字。
func (e *Employee) Credential() string {
	if !e.PasswordHash.Valid {
		return ""
	}
	return e.PasswordHash.String
}
