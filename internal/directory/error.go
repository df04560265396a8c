package directory

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// 共通エラーコード（必要に応じて追加）
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnavailable     = "UNAVAILABLE"
)

// 事前チェックとUNIQUE制約違反の両方をこの1つに集約する。
// 呼び出し側からは経路の区別がつかないようにする。
var ErrDuplicateNumber = &DomainError{
	Code:    ErrCodeConflict,
	Message: "employee number already exists",
}

var ErrNotFound = &DomainError{
	Code:    ErrCodeNotFound,
	Message: "employee not found",
}

func NewInvalidArgumentError(msg string) error {
	return &DomainError{Code: ErrCodeInvalidArgument, Message: msg}
}

func NewUnavailableError(msg string) error {
	return &DomainError{Code: ErrCodeUnavailable, Message: msg}
}
