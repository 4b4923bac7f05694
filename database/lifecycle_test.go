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
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLifecycle_Archive(t *testing.T) {
	ds, mock := newTestDatasource(t)
	ctx := auth.WithUser(context.Background(), &model.UserData{UserID: "usr_1"})

	mock.ExpectExec(regexp.QuoteMeta("UPDATE material_types SET archived_at = $1, updated_at = $2, updated_by = $3 WHERE id = $4")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "usr_1", "mtt_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.SetLifecycle(ctx, MaterialTypes, "mtt_1", true))
}

func TestSetLifecycle_RestoreClearsColumn(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE samples SET deleted_at = $1")).
		WithArgs(nil, sqlmock.AnyArg(), nil, "smp_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.SetLifecycle(context.Background(), Samples, "smp_1", false))
}

func TestSetLifecycle_NotFound(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE users SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 0))

	err := ds.SetLifecycle(context.Background(), Users, "usr_missing", true)
	var apiErr apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
	assert.Equal(t, "user not found", apiErr.Message)
}

func TestLookup(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM parameters p WHERE ((p.archived_at IS NULL))")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.id, p.code, p.name FROM parameters p WHERE ((p.archived_at IS NULL)) ORDER BY p.name ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow("par_1", "moisture", "Moisture").
			AddRow("par_2", "strength", "Compressive strength"))

	page, err := ds.Lookup(context.Background(), Parameters, params(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []model.Lookup{
		{ID: "par_1", Code: "moisture", Name: "Moisture"},
		{ID: "par_2", Code: "strength", Name: "Compressive strength"},
	}, page.Data)
}

func TestLookup_TableWithoutLookup(t *testing.T) {
	ds, _ := newTestDatasource(t)

	_, err := ds.Lookup(context.Background(), Samples, params(t, ""))
	var apiErr apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.ErrInternalServer, apiErr.Code)
}

func TestMissingIDs(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM roles WHERE id IN ($1,$2,$3)")).
		WithArgs("rol_a", "rol_b", "rol_c").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rol_c").AddRow("rol_a"))

	missing, err := ds.MissingIDs(context.Background(), Roles, []string{"rol_a", "rol_b", "rol_c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rol_b"}, missing)
}

func TestMissingIDs_Empty(t *testing.T) {
	ds, _ := newTestDatasource(t)

	missing, err := ds.MissingIDs(context.Background(), Roles, nil)
	assert.NoError(t, err)
	assert.Empty(t, missing)
}
