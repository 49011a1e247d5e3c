package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model (各ドメイン共通) =====
type Code string

const (
	CodeInvalidArgument      Code = "INVALID_ARGUMENT"
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeConflict             Code = "CONFLICT"
	CodeConfirmationRequired Code = "CONFIRMATION_REQUIRED"
	CodeInternal             Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// ログ用。レスポンスには出さない
	Cause error `json:"-"`
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnauthenticated(msg string) *APIError {
	return &APIError{Code: CodeUnauthenticated, Message: msg}
}
func ErrForbidden(msg string) *APIError { return &APIError{Code: CodeForbidden, Message: msg} }
func ErrNotFound(msg string) *APIError  { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError  { return &APIError{Code: CodeConflict, Message: msg} }
func ErrConfirmationRequired(msg string) *APIError {
	return &APIError{Code: CodeConfirmationRequired, Message: msg}
}

// ErrInternal はバックエンド障害。msg は利用者向けの短い文言、cause はログ用。
func ErrInternal(msg string, cause error) *APIError {
	return &APIError{Code: CodeInternal, Message: msg, Cause: cause}
}

func Status(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthenticated:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeConfirmationRequired:
			return http.StatusPreconditionRequired
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Body(err error) errDTO {
	var e errDTO
	var api *APIError
	if errors.As(err, &api) {
		e.Error.Code = api.Code
		e.Error.Message = api.Message
		return e
	}
	// 想定外のエラー文言はそのまま出さない
	e.Error.Code = CodeInternal
	e.Error.Message = "internal error"
	return e
}

func BodyOf(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}
