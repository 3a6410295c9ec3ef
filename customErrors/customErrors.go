package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrNotFound           = "NOT FOUND"
	ErrInvalidInput       = "INVALID INPUT"
	ErrAuth               = "UNAUTHORIZED"
	ErrAccessDenied       = "ACCESS DENIED"
	ErrConflict           = "CONFLICT"
	ErrStorageUnavailable = "STORAGE UNAVAILABLE"
	ErrInternal           = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

func New(code string, format string, args ...any) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether any ErrorResponse in err's chain carries code.
func HasCode(err error, code string) bool {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first ErrorResponse in err's chain, or ErrInternal.
func CodeOf(err error) string {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// MessageOf returns the message of the first ErrorResponse in err's chain, falling back to err.Error().
func MessageOf(err error) string {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
