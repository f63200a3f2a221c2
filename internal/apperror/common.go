package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrConflict      = New(CodeConflict, "Conflict", http.StatusConflict)
	ErrForbidden     = New(CodeForbidden, "Forbidden", http.StatusForbidden)
	ErrUnauthorized  = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrLimitExceeded = New(CodeLimitExceeded, "Too many requests", http.StatusTooManyRequests)
	ErrInvalidInput  = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrInternal      = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
)

// NotFound reports a missing entity in the "<Entity> with ID:<id> not found" form
func NotFound(entity string, id int64) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s with ID:%d not found", entity, id), http.StatusNotFound)
}

func Conflict(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict, Err: err}
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized, Err: err}
}

func LimitExceeded(message string) *AppError {
	return New(CodeLimitExceeded, message, http.StatusTooManyRequests)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}
