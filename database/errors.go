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

package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/lib/pq"
)

// mapError converts driver errors into API errors naming entity.
// Query validation errors are passed through for the caller to classify.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var apiErr apierror.APIError
	if errors.As(err, &apiErr) || errors.Is(err, query.ErrValidation) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) || sqlscan.NotFound(err) {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("%s not found", entity), nil)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("%s already exists", entity), err)
		case "foreign_key_violation":
			return apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("%s references a missing or protected row", entity), err)
		case "check_violation", "not_null_violation":
			return apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid %s", entity), err)
		}
		// Class 22 is data_exception: a value the column type rejects.
		if pqErr.Code.Class() == "22" {
			return apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid value for %s", entity), err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
	}

	if errors.Is(err, query.ErrUnsupportedOperator) {
		return apierror.NewAPIError(apierror.ErrInternalServer, "invalid list configuration", err)
	}

	return apierror.NewAPIError(apierror.ErrInternalServer, fmt.Sprintf("failed to access %s", entity), err)
}

// expectAffected reports a not found error when an update touched no row.
func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, entity)
	}
	if n == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("%s not found", entity), nil)
	}
	return nil
}
