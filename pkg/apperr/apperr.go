// Package apperr 定义业务错误分类，并统一映射为 HTTP 状态码。
package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindUpload
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuth:
		return "AuthError"
	case KindForbidden:
		return "AuthorizationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindUpload:
		return "UploadError"
	case KindPersistence:
		return "PersistenceError"
	default:
		return "InternalError"
	}
}

// Status 对应的 HTTP 状态码
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, err error, details []string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err, Details: details}
}

func Validation(msg string, details ...string) *Error {
	return newError(KindValidation, msg, nil, details)
}

func Auth(msg string) *Error {
	return newError(KindAuth, msg, nil, nil)
}

func Forbidden(msg string) *Error {
	return newError(KindForbidden, msg, nil, nil)
}

func NotFound(msg string) *Error {
	return newError(KindNotFound, msg, nil, nil)
}

func Conflict(msg string) *Error {
	return newError(KindConflict, msg, nil, nil)
}

// Upload 媒体存储失败
func Upload(msg string, err error) *Error {
	return newError(KindUpload, msg, err, nil)
}

// Persistence 数据库失败
func Persistence(msg string, err error) *Error {
	return newError(KindPersistence, msg, err, nil)
}

// WithCause 复制一个携带底层原因的错误，errors.Is 仍能匹配原哨兵
func (e *Error) WithCause(err error) error {
	return &causeError{sentinel: e, cause: err}
}

type causeError struct {
	sentinel *Error
	cause    error
}

func (c *causeError) Error() string {
	return c.sentinel.Message + ": " + c.cause.Error()
}

func (c *causeError) Unwrap() []error {
	return []error{c.sentinel, c.cause}
}

// As 取出错误链上的 *Error
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf 返回错误类别，非业务错误为 KindUnknown
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf 返回错误对应的 HTTP 状态码
func StatusOf(err error) int {
	return KindOf(err).Status()
}
