package apperror

import (
	"errors"
	"fmt"
)

// Code classifies a failure for the HTTP boundary and for clients that need to
// react differently (e.g. RaceLost removes the request from a pending list).
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeRaceLost          Code = "RACE_LOST"
	CodeValidation        Code = "VALIDATION"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeUnavailable       Code = "UNAVAILABLE"
	CodeInternal          Code = "INTERNAL"
)

type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func InvalidTransition(message string) *AppError {
	return New(CodeInvalidTransition, message)
}

// RaceLost is the accept-race flavour of InvalidTransition: the caller was not
// wrong about the protocol, just late.
func RaceLost(message string) *AppError {
	return New(CodeRaceLost, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

// CodeOf extracts the classification from any error in the chain, defaulting
// to CodeInternal.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
