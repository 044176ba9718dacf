package service

import "errors"

// 服务层错误哨兵，处理器层据此映射HTTP状态码
var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("operation not permitted")
	ErrIllegalState = errors.New("illegal state transition")
	ErrConflict     = errors.New("resource conflict")
)

// ServiceError 携带用户可读信息的业务错误
type ServiceError struct {
	kind    error
	message string
}

func (e *ServiceError) Error() string {
	return e.message
}

func (e *ServiceError) Unwrap() error {
	return e.kind
}

func validationError(message string) error {
	return &ServiceError{kind: ErrValidation, message: message}
}

func forbiddenError(message string) error {
	return &ServiceError{kind: ErrForbidden, message: message}
}

func illegalStateError(message string) error {
	return &ServiceError{kind: ErrIllegalState, message: message}
}

func conflictError(message string) error {
	return &ServiceError{kind: ErrConflict, message: message}
}
