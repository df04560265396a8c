package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn), mock
}

func attendanceCols() []string {
	return []string{"attendance_id", "employee_id", "date", "status", "check_in_time"}
}

func TestStore_Upsert_Insert(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	// 新規INSERTは RowsAffected=1
	mock.ExpectExec("INSERT INTO attendance").
		WithArgs("42", "2024-05-01", "present", now).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM attendance").
		WithArgs("42", "2024-05-01").
		WillReturnRows(sqlmock.NewRows(attendanceCols()).
			AddRow(int64(7), "42", "2024-05-01", "present", now))

	row, created, err := store.Upsert(context.Background(), "42", "2024-05-01", StatusPresent, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(7), row.AttendanceID)
	assert.Equal(t, StatusPresent, row.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Upsert_Overwrite(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	// ON DUPLICATE KEY UPDATE が効くと RowsAffected=2
	mock.ExpectExec("INSERT INTO attendance").
		WithArgs("42", "2024-05-01", "absent", now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT (.+) FROM attendance").
		WithArgs("42", "2024-05-01").
		WillReturnRows(sqlmock.NewRows(attendanceCols()).
			AddRow(int64(7), "42", "2024-05-01", "absent", now))

	row, created, err := store.Upsert(context.Background(), "42", "2024-05-01", StatusAbsent, now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint64(7), row.AttendanceID)
	assert.Equal(t, StatusAbsent, row.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindByDay_Miss(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM attendance").
		WithArgs("42", "2024-05-01").
		WillReturnError(sql.ErrNoRows)

	row, err := store.FindByDay(context.Background(), "42", "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, row)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM attendance").
		WithArgs("42", 2).
		WillReturnRows(sqlmock.NewRows(attendanceCols()).
			AddRow(int64(9), "42", "2024-05-02", "absent", now).
			AddRow(int64(7), "42", "2024-05-01", "present", now))

	out, err := store.Recent(context.Background(), "42", 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-05-02", out[0].Date)
	assert.Equal(t, StatusAbsent, out[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
