package credential

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 既定パスワード（管理画面から追加された直後の従業員が使う）
const DefaultPassword = "123456"

// bcrypt のコスト。旧システムからの移行データと揃える。
const hashCost = 10

type Kind string

const (
	KindAbsent Kind = "absent" // 資格情報なし＝既定パスワード扱い
	KindLegacy Kind = "legacy" // 平文のまま残っている旧データ
	KindHashed Kind = "hashed" // bcrypt ダイジェスト
)

// bcrypt ダイジェストは自己記述（$2a$ / $2b$ / $2y$ で始まる）
var hashMarkers = []string{"$2a$", "$2b$", "$2y$"}

// Scheme は保存済み資格情報を一度だけ分類した結果。
// 判定ロジックはここに閉じる。呼び出し側は Verify だけ見ればよい。
type Scheme struct {
	kind   Kind
	stored string
}

// Classify は保存値のプレフィックスで方式を決める唯一の分岐点。
// 空 → absent、bcryptマーカー → hashed、それ以外の非空 → legacy。
func Classify(stored string) Scheme {
	if stored == "" {
		return Scheme{kind: KindAbsent}
	}
	for _, m := range hashMarkers {
		if strings.HasPrefix(stored, m) {
			return Scheme{kind: KindHashed, stored: stored}
		}
	}
	return Scheme{kind: KindLegacy, stored: stored}
}

func (s Scheme) Kind() Kind { return s.kind }

// Verify は候補パスワードを分類済みの方式で照合する。
// legacy は大文字小文字を含む完全一致。正規化は一切しない。
func (s Scheme) Verify(candidate string) bool {
	switch s.kind {
	case KindAbsent:
		return subtle.ConstantTimeCompare([]byte(candidate), []byte(DefaultPassword)) == 1
	case KindLegacy:
		return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.stored)) == 1
	case KindHashed:
		return bcrypt.CompareHashAndPassword([]byte(s.stored), []byte(candidate)) == nil
	default:
		return false
	}
}

// Hash は平文から bcrypt ダイジェストを作る。
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
