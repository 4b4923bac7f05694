package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jerry-enebeli/soillab/internal/compliance"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrBadRequest     ErrorCode = "BAD_REQUEST"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrForbidden      ErrorCode = "FORBIDDEN"
	ErrUnprocessable  ErrorCode = "UNPROCESSABLE"
	ErrInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	if details != nil {
		logrus.WithField("code", code).Error(details)
	}
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RelatedNotFound reports ids in a request body that reference no row.
func RelatedNotFound(entity string, ids []string) APIError {
	return APIError{
		Code:    ErrInvalidInput,
		Message: fmt.Sprintf("related %s not found", entity),
		Details: map[string]interface{}{"entity": entity, "ids": ids},
	}
}

// FromError converts errors raised below the service layer into an APIError.
// Errors that already are APIErrors pass through unchanged.
func FromError(err error) APIError {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, query.ErrValidation), errors.Is(err, compliance.ErrValidation):
		return APIError{Code: ErrInvalidInput, Message: err.Error()}
	case errors.Is(err, compliance.ErrUndetermined):
		return APIError{Code: ErrUnprocessable, Message: err.Error()}
	}
	return NewAPIError(ErrInternalServer, "internal server error", err.Error())
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict:
			return http.StatusConflict
		case ErrBadRequest, ErrInvalidInput:
			return http.StatusBadRequest
		case ErrUnauthorized:
			return http.StatusUnauthorized
		case ErrForbidden:
			return http.StatusForbidden
		case ErrUnprocessable:
			return http.StatusUnprocessableEntity
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
