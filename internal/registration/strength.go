package registration

import (
	"regexp"
	"unicode/utf8"
)

var (
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// PasswordStrength は [0,5] の助言スコアを返す。
// 長さ6以上・小文字・大文字・数字・記号で各1点。強制はしない。
func PasswordStrength(password string) int {
	score := 0
	if utf8.RuneCountInString(password) >= minPasswordLength {
		score++
	}
	if lowerPattern.MatchString(password) {
		score++
	}
	if upperPattern.MatchString(password) {
		score++
	}
	if digitPattern.MatchString(password) {
		score++
	}
	if symbolPattern.MatchString(password) {
		score++
	}
	return score
}
