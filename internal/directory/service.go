package directory

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"

	"florina-backend/internal/credential"
)

const minNameLength = 2

// EmployeeStore は従業員レジストリの永続化層。実体は store.go（MySQL）。
type EmployeeStore interface {
	FindByNumber(ctx context.Context, number string) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Insert(ctx context.Context, e *Employee) error
	UpdateName(ctx context.Context, id, name string, now time.Time) (int64, error)
	UpdatePassword(ctx context.Context, id, hash string, now time.Time) (int64, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) (int64, error)
}

type idGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	store EmployeeStore
	id    idGen
	now   func() time.Time
}

func NewService(conn *sql.DB) *Service {
	return newService(NewStore(conn))
}

func newService(store EmployeeStore) *Service {
	return &Service{
		store: store,
		id:    ulidGen{},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	EmployeeNumber string
	Name           string
	// 空ならNULLで保存＝既定パスワード扱い
	PasswordHash string
}

// Create は従業員を1件追加する。番号の一意性はDBのUNIQUE制約が最終防衛線。
func (s *Service) Create(ctx context.Context, in CreateInput) (*Employee, error) {
	number := strings.TrimSpace(in.EmployeeNumber)
	if number == "" {
		return nil, NewInvalidArgumentError("employee_number is required")
	}
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := &Employee{
		ID:             id,
		EmployeeNumber: number,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.PasswordHash != "" {
		e.PasswordHash = sql.NullString{String: in.PasswordHash, Valid: true}
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) FindByNumber(ctx context.Context, number string) (*Employee, error) {
	return s.store.FindByNumber(ctx, strings.TrimSpace(number))
}

func (s *Service) FindByID(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrNotFound
	}
	return emp, nil
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

// UpdateName は名前のみ変更する。employee_number は作成後不変。
func (s *Service) UpdateName(ctx context.Context, id string, newName string) error {
	name, err := normalizeName(newName)
	if err != nil {
		return err
	}
	n, err := s.store.UpdateName(ctx, id, name, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword は管理者による再設定。新しい値は必ずハッシュで保存される。
func (s *Service) ResetPassword(ctx context.Context, id string, newPassword string) error {
	if len(newPassword) < 6 {
		return NewInvalidArgumentError("password must be at least 6 characters")
	}
	hash, err := credential.Hash(newPassword)
	if err != nil {
		return err
	}
	n, err := s.store.UpdatePassword(ctx, id, hash, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin は認証成功の記録。失敗してもログイン自体は成立させる。
func (s *Service) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return s.store.UpdateLastLogin(ctx, id, at)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// アラビア語名は合成文字の表現ゆれがあるのでNFCに寄せてから長さを見る
func normalizeName(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if utf8.RuneCountInString(name) < minNameLength {
		return "", NewInvalidArgumentError("name must be at least 2 characters")
	}
	return name, nil
}
