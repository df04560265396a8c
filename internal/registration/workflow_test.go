package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"florina-backend/internal/credential"
	"florina-backend/internal/directory"
)

// fakeDirectory は登録ワークフローから見えるレジストリの雛形。
// insertErr で Submit 時のUNIQUE制約違反を再現できる。
type fakeDirectory struct {
	employees map[string]*directory.Employee
	insertErr error
	created   []directory.CreateInput
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{employees: make(map[string]*directory.Employee)}
}

func (f *fakeDirectory) FindByNumber(_ context.Context, number string) (*directory.Employee, error) {
	return f.employees[number], nil
}

func (f *fakeDirectory) Create(_ context.Context, in directory.CreateInput) (*directory.Employee, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if _, ok := f.employees[in.EmployeeNumber]; ok {
		return nil, directory.ErrDuplicateNumber
	}
	f.created = append(f.created, in)
	e := &directory.Employee{ID: "emp-1", EmployeeNumber: in.EmployeeNumber, Name: in.Name}
	f.employees[in.EmployeeNumber] = e
	return e, nil
}

func startedWorkflow(t *testing.T, dir Directory) *Workflow {
	t.Helper()
	w := NewWorkflow(dir)
	require.NoError(t, w.Start())
	return w
}

func TestWorkflow_HappyPath(t *testing.T) {
	dir := newFakeDirectory()
	w := startedWorkflow(t, dir)

	require.NoError(t, w.Step1(context.Background(), " 010 ", "Ahmed"))
	assert.Equal(t, StateAwaitingStep2, w.State())

	strength, err := w.Step2("abc123", "abc123")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strength, 1)

	number, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "010", number)
	assert.Equal(t, StateCompleted, w.State())

	// 保存されるのはハッシュであって平文ではない
	require.Len(t, dir.created, 1)
	stored := dir.created[0].PasswordHash
	assert.Equal(t, credential.KindHashed, credential.Classify(stored).Kind())
	assert.True(t, credential.Classify(stored).Verify("abc123"))
}

func TestWorkflow_Step1_DuplicateStaysInStep1(t *testing.T) {
	dir := newFakeDirectory()
	dir.employees["010"] = &directory.Employee{ID: "x", EmployeeNumber: "010"}
	w := startedWorkflow(t, dir)

	err := w.Step1(context.Background(), "010", "Ahmed")
	assert.ErrorIs(t, err, directory.ErrDuplicateNumber)
	assert.Equal(t, StateAwaitingStep1, w.State())
}

func TestWorkflow_Step1_Validation(t *testing.T) {
	tests := []struct {
		name   string
		number string
		empN   string
	}{
		{"empty number", "", "Ahmed"},
		{"empty name", "010", ""},
		{"one-char name", "010", "A"},
		{"whitespace name", "010", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := startedWorkflow(t, newFakeDirectory())
			err := w.Step1(context.Background(), tt.number, tt.empN)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Equal(t, StateAwaitingStep1, w.State())
		})
	}
}

func TestWorkflow_Step2_Validation(t *testing.T) {
	w := startedWorkflow(t, newFakeDirectory())
	require.NoError(t, w.Step1(context.Background(), "010", "Ahmed"))

	_, err := w.Step2("abc", "abc")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	_, err = w.Step2("abc123", "abc124")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "confirm_password", ve.Field)

	// 失敗してもAwaitingStep2に留まり、やり直せる
	assert.Equal(t, StateAwaitingStep2, w.State())
	_, err = w.Step2("abc123", "abc123")
	assert.NoError(t, err)
}

func TestWorkflow_Submit_ConflictReturnsToStep1(t *testing.T) {
	// 事前チェックは通るが、Submit時に並行登録がUNIQUE制約に当たるケース
	dir := newFakeDirectory()
	dir.insertErr = directory.ErrDuplicateNumber
	w := startedWorkflow(t, dir)

	require.NoError(t, w.Step1(context.Background(), "010", "Ahmed"))
	_, err := w.Step2("abc123", "abc123")
	require.NoError(t, err)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, directory.ErrDuplicateNumber)
	assert.Equal(t, StateAwaitingStep1, w.State())
}

func TestWorkflow_Cancel(t *testing.T) {
	dir := newFakeDirectory()

	w := startedWorkflow(t, dir)
	require.NoError(t, w.Cancel())
	assert.Equal(t, StateCancelled, w.State())

	w = startedWorkflow(t, dir)
	require.NoError(t, w.Step1(context.Background(), "010", "Ahmed"))
	require.NoError(t, w.Cancel())
	assert.Equal(t, StateCancelled, w.State())

	// 何も永続化されていない
	assert.Empty(t, dir.created)

	// 取り消し後は進められない
	assert.ErrorIs(t, w.Step1(context.Background(), "011", "Sara"), ErrInvalidState)
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestWorkflow_StateGuards(t *testing.T) {
	w := NewWorkflow(newFakeDirectory())

	// Start前は何もできない
	assert.ErrorIs(t, w.Step1(context.Background(), "010", "Ahmed"), ErrInvalidState)
	_, err := w.Step2("abc123", "abc123")
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, w.Start())
	assert.ErrorIs(t, w.Start(), ErrInvalidState)

	// Step1を飛ばしてStep2/Submitはできない
	_, err = w.Step2("abc123", "abc123")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}
