package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "github.com/miigangls/restaurant-tickets/internal/repository"
)

// エラー種別。handlerでHTTPステータスに変換する
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindInvalidRequest ErrorKind = "INVALID_REQUEST"
	KindInvalidState   ErrorKind = "INVALID_STATE"
	KindUnauthorized   ErrorKind = "UNAUTHORIZED"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindConflict       ErrorKind = "CONFLICT"
	KindInternal       ErrorKind = "INTERNAL"
)

func (k ErrorKind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    ErrorKind
	Message string
	// ログ用。レスポンスには出さない
	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsKind(err error, kind ErrorKind) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Kind == kind
}

func NotFound(format string, args ...any) error {
	return NewAppError(KindNotFound, fmt.Sprintf(format, args...))
}

func InvalidRequest(format string, args ...any) error {
	return NewAppError(KindInvalidRequest, fmt.Sprintf(format, args...))
}

func InvalidState(format string, args ...any) error {
	return NewAppError(KindInvalidState, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) error {
	return NewAppError(KindUnauthorized, message)
}

func Forbidden(message string) error {
	return NewAppError(KindForbidden, message)
}

func Conflict(message string) error {
	return NewAppError(KindConflict, message)
}

// 原因はErrに残す。メッセージは固定
func Internal(err error) error {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// Tx内で起きたrepositoryエラーをAppErrorにそろえる
// 既にAppErrorならそのまま。制約違反はINVALID_REQUEST
func fromDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrConstraint) {
		return &AppError{Kind: KindInvalidRequest, Message: "request violates a data constraint", Err: err}
	}
	return Internal(err)
}
