package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"florina-backend/internal/credential"
	"florina-backend/internal/directory"
)

type State string

const (
	StateInitial       State = "initial"
	StateAwaitingStep1 State = "awaiting_step1"
	StateAwaitingStep2 State = "awaiting_step2"
	StateCompleted     State = "completed"
	StateCancelled     State = "cancelled"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

var ErrInvalidState = errors.New("registration: invalid workflow state")

// ValidationError は永続化前に弾いた入力エラー
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Directory は登録ワークフローが見る従業員レジストリ。実体は directory.Service。
type Directory interface {
	FindByNumber(ctx context.Context, number string) (*directory.Employee, error)
	Create(ctx context.Context, in directory.CreateInput) (*directory.Employee, error)
}

// Workflow は自己登録の2段階ステートマシン。
//
//	Initial → AwaitingStep1 → AwaitingStep2 → Completed | Cancelled
//
// Submit が成功するまで何も永続化されない。
type Workflow struct {
	dir   Directory
	state State

	employeeNumber string
	name           string
	password       string
}

func NewWorkflow(dir Directory) *Workflow {
	return &Workflow{dir: dir, state: StateInitial}
}

func (w *Workflow) State() State { return w.state }

func (w *Workflow) Start() error {
	if w.state != StateInitial {
		return ErrInvalidState
	}
	w.state = StateAwaitingStep1
	return nil
}

// Step1 は番号と名前を検証し、存在事前チェックを行う。
// 事前チェックはUX向けの先回りでしかない。一意性の本当の番人はDBの
// UNIQUE制約で、Submit側でも同じ ErrDuplicateNumber が返りうる。
func (w *Workflow) Step1(ctx context.Context, employeeNumber, name string) error {
	if w.state != StateAwaitingStep1 {
		return ErrInvalidState
	}

	number := strings.TrimSpace(employeeNumber)
	if number == "" {
		return &ValidationError{Field: "employee_number", Message: "required"}
	}
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if utf8.RuneCountInString(trimmedName) < minNameLength {
		return &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}

	existing, err := w.dir.FindByNumber(ctx, number)
	if err != nil {
		return err
	}
	if existing != nil {
		// 重複。AwaitingStep1に留まる
		return directory.ErrDuplicateNumber
	}

	w.employeeNumber = number
	w.name = trimmedName
	w.state = StateAwaitingStep2
	return nil
}

// Step2 はパスワードを検証して保持する。強度スコアは助言目的で、
// 6文字未満以外は何もブロックしない。
func (w *Workflow) Step2(password, confirmPassword string) (int, error) {
	if w.state != StateAwaitingStep2 {
		return 0, ErrInvalidState
	}

	if password == "" {
		return 0, &ValidationError{Field: "password", Message: "required"}
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return 0, &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	if password != confirmPassword {
		return 0, &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}

	w.password = password
	return PasswordStrength(password), nil
}

// Submit はハッシュ化してから1回だけINSERTを試みる。
// UNIQUE制約違反は事前チェックと同じ ErrDuplicateNumber として返し、
// ワークフローはAwaitingStep1へ戻る（クラッシュさせない）。
func (w *Workflow) Submit(ctx context.Context) (string, error) {
	if w.state != StateAwaitingStep2 || w.password == "" {
		return "", ErrInvalidState
	}

	hash, err := credential.Hash(w.password)
	if err != nil {
		return "", err
	}

	_, err = w.dir.Create(ctx, directory.CreateInput{
		EmployeeNumber: w.employeeNumber,
		Name:           w.name,
		PasswordHash:   hash,
	})
	if err != nil {
		if errors.Is(err, directory.ErrDuplicateNumber) {
			w.password = ""
			w.state = StateAwaitingStep1
		}
		return "", err
	}

	w.state = StateCompleted
	return w.employeeNumber, nil
}

// Cancel はどちらのステップからでも可能。入力途中のデータは破棄する。
func (w *Workflow) Cancel() error {
	if w.state != StateAwaitingStep1 && w.state != StateAwaitingStep2 {
		return ErrInvalidState
	}
	w.employeeNumber = ""
	w.name = ""
	w.password = ""
	w.state = StateCancelled
	return nil
}
