package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 1},        // 小文字のみ、長さ不足
		{"abcdef", 2},     // 長さ + 小文字
		{"abcde1", 3},     // 長さ + 小文字 + 数字
		{"Abcde1", 4},     // + 大文字
		{"Abcd1!", 5},     // + 記号
		{"ABC123", 3},     // 長さ + 大文字 + 数字
		{"!!!!!!", 2},     // 長さ + 記号
		{"P@ssw0rd", 5},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength(tt.password))
		})
	}
}

// 条件を満たすごとにスコアは単調に増え、[0,5]に収まる
func TestPasswordStrength_MonotonicAndBounded(t *testing.T) {
	steps := []string{"", "a", "abcdef", "abcdeF", "abcdeF1", "abcdeF1!"}
	prev := -1
	for _, pw := range steps {
		s := PasswordStrength(pw)
		assert.GreaterOrEqual(t, s, prev, "password %q", pw)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 5)
		prev = s
	}
}
