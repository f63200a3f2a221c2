package response

import (
	"net/http"

	"swmanager/internal/apperror"

	"go.uber.org/zap"
)

// TotalCountHeader carries the unpaginated row count of list endpoints
const TotalCountHeader = "X-Total-Count"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error returns an error body with the given message
func Error(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// FromError maps err to its HTTP status and client-facing body.
// Errors that are not application errors become a logged 500.
func FromError(err error) (int, ErrorResponse) {
	if appErr, ok := apperror.As(err); ok {
		return appErr.HTTPStatus, Error(appErr.Message)
	}
	zap.L().Error("unhandled error", zap.Error(err))
	return http.StatusInternalServerError, Error(apperror.ErrInternal.Message)
}
