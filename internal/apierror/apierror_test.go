/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/compliance"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	details := "Some internal error details"
	apiErr := apierror.NewAPIError(apierror.ErrInternalServer, "Something went wrong", details)

	assert.Equal(t, apierror.ErrInternalServer, apiErr.Code)
	assert.Equal(t, "Something went wrong", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "INTERNAL_SERVER_ERROR: Something went wrong", apiErr.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "NotFound Error",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "Resource not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "Conflict Error",
			err:      apierror.NewAPIError(apierror.ErrConflict, "Conflict occurred", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "InvalidInput Error",
			err:      apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid input", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Unauthorized Error",
			err:      apierror.NewAPIError(apierror.ErrUnauthorized, "Invalid token", nil),
			expected: http.StatusUnauthorized,
		},
		{
			name:     "Forbidden Error",
			err:      apierror.NewAPIError(apierror.ErrForbidden, "Missing permission", nil),
			expected: http.StatusForbidden,
		},
		{
			name:     "Unprocessable Error",
			err:      apierror.NewAPIError(apierror.ErrUnprocessable, "Cannot determine compliance", nil),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "Wrapped APIError",
			err:      fmt.Errorf("create sample: %w", apierror.NewAPIError(apierror.ErrNotFound, "Material not found", nil)),
			expected: http.StatusNotFound,
		},
		{
			name:     "InternalServerError",
			err:      apierror.NewAPIError(apierror.ErrInternalServer, "Internal server error", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown Error",
			err:      errors.New("Unknown error"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode := apierror.MapErrorToHTTPStatus(tt.err)
			assert.Equal(t, tt.expected, statusCode)
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected apierror.ErrorCode
	}{
		{name: "query validation", err: query.ErrInvalidPageNumber, expected: apierror.ErrInvalidInput},
		{name: "compliance validation", err: fmt.Errorf("resolve: %w", compliance.ErrMissingMeasurements), expected: apierror.ErrInvalidInput},
		{name: "undetermined", err: fmt.Errorf("resolve: %w", compliance.ErrUndetermined), expected: apierror.ErrUnprocessable},
		{name: "unsupported operator", err: query.ErrUnsupportedOperator, expected: apierror.ErrInternalServer},
		{name: "api error passes through", err: apierror.NewAPIError(apierror.ErrConflict, "taken", nil), expected: apierror.ErrConflict},
		{name: "unknown", err: errors.New("boom"), expected: apierror.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, apierror.FromError(tt.err).Code)
		})
	}
}

func TestRelatedNotFound(t *testing.T) {
	err := apierror.RelatedNotFound("roles", []string{"rol_1"})
	assert.Equal(t, http.StatusBadRequest, apierror.MapErrorToHTTPStatus(err))
	assert.Equal(t, "INVALID_INPUT: related roles not found", err.Error())
}
