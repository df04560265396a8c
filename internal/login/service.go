package login

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"florina-backend/internal/credential"
	"florina-backend/internal/directory"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Directory は従業員レジストリへの読み書き。実体は directory.Service。
type Directory interface {
	FindByNumber(ctx context.Context, number string) (*directory.Employee, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type Service struct {
	dir Directory
	now func() time.Time
}

func NewService(dir Directory) *Service {
	return &Service{
		dir: dir,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate は従業員番号と候補パスワードで本人確認する。
// 保存値の方式（なし/平文/ハッシュ）は credential.Classify が一度だけ判定する。
// 成功時の last_login 書き込みはベストエフォートで、失敗しても認証は成立する。
func (s *Service) Authenticate(ctx context.Context, employeeNumber, password string) (*directory.Employee, error) {
	number := strings.TrimSpace(employeeNumber)
	if number == "" {
		return nil, ErrEmployeeNotFound
	}

	emp, err := s.dir.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	if !credential.Classify(emp.Credential()).Verify(password) {
		return nil, ErrInvalidCredential
	}

	at := s.now()
	go func() {
		// リクエストのctxはレスポンス後にキャンセルされるので独立させる
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.dir.TouchLastLogin(ctx, emp.ID, at); err != nil {
			log.Printf("[WARN] last_login update failed (employee_id=%s): %v", emp.ID, err)
		}
	}()

	return emp, nil
}
