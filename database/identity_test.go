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
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userColumns = []string{"id", "first_name", "last_name", "email", "is_active", "is_superuser", "last_login_at",
		"deleted_at", "created_at", "updated_at", "created_by", "updated_by"}
	roleColumns       = []string{"id", "code", "name", "description", "archived_at", "created_at", "updated_at", "created_by", "updated_by"}
	permissionColumns = []string{"id", "code", "name", "description", "archived_at", "created_at", "updated_at", "created_by", "updated_by"}
)

func TestCreateUser(t *testing.T) {
	ds, mock := newTestDatasource(t)
	u := &model.User{
		FirstName:      gofakeit.FirstName(),
		LastName:       gofakeit.LastName(),
		Email:          gofakeit.Email(),
		HashedPassword: "$2a$10$hash",
		IsActive:       true,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), u.FirstName, u.LastName, u.Email, u.HashedPassword, true, false,
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, ds.CreateUser(context.Background(), u))
	assert.True(t, strings.HasPrefix(u.ID, "usr_"))
}

func TestGetUserByID_LoadsRolesAndPermissions(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u WHERE u.id = $1 LIMIT 1")).
		WithArgs("usr_1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("usr_1", "Ada", "Lovelace", "ada@lab.io", true, false, nil, nil, now, now, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("ur.user_id AS owner_id FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id IN ($1) ORDER BY r.name")).
		WithArgs("usr_1").
		WillReturnRows(sqlmock.NewRows(append(roleColumns, "owner_id")).
			AddRow("rol_1", "lab_assistant", "Lab assistant", nil, nil, now, now, nil, nil, "usr_1"))
	mock.ExpectQuery(regexp.QuoteMeta("up.user_id AS owner_id FROM permissions pe JOIN user_permissions up ON up.permission_id = pe.id WHERE up.user_id IN ($1) ORDER BY pe.code")).
		WithArgs("usr_1").
		WillReturnRows(sqlmock.NewRows(append(permissionColumns, "owner_id")).
			AddRow("prm_1", "samples.read", "Read samples", nil, nil, now, now, nil, nil, "usr_1"))

	u, err := ds.GetUserByID(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.FullName())
	require.Len(t, u.Roles, 1)
	assert.Equal(t, "lab_assistant", u.Roles[0].Code)
	require.Len(t, u.Permissions, 1)
	assert.Equal(t, "samples.read", u.Permissions[0].Code)
}

func TestGetUserByEmail_IncludesHash(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (lower(u.email) = lower($1) AND u.deleted_at IS NULL) LIMIT 1")).
		WithArgs("Ada@Lab.io").
		WillReturnRows(sqlmock.NewRows(append(userColumns, "hashed_password")).
			AddRow("usr_1", "Ada", "Lovelace", "ada@lab.io", true, false, nil, nil, now, now, nil, nil, "$2a$10$hash"))

	u, err := ds.GetUserByEmail(context.Background(), "Ada@Lab.io")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", u.HashedPassword)
}

func TestUpdateUser_KeepsPasswordWhenEmpty(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET first_name = $1, last_name = $2, email = $3, is_active = $4, is_superuser = $5, updated_at = $6, updated_by = $7 WHERE id = $8")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.UpdateUser(context.Background(), &model.User{ID: "usr_1", Email: "a@b.io"}))
}

func TestSetUserRoles_ReplacesLinks(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
		WithArgs("usr_1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles (user_id,role_id) VALUES ($1,$2),($3,$4)")).
		WithArgs("usr_1", "rol_1", "usr_1", "rol_2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	assert.NoError(t, ds.SetUserRoles(context.Background(), "usr_1", []string{"rol_1", "rol_2"}))
}

func TestSetRolePermissions_ClearAll(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM role_permissions").
		WithArgs("rol_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, ds.SetRolePermissions(context.Background(), "rol_1", nil))
}

func TestGetUserPermissionCodes(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT pe.code FROM permissions pe WHERE pe.archived_at IS NULL AND (pe.id IN (SELECT up.permission_id FROM user_permissions up WHERE up.user_id = $1) OR pe.id IN (SELECT rp.permission_id FROM role_permissions rp JOIN roles r ON r.id = rp.role_id JOIN user_roles ur ON ur.role_id = r.id WHERE r.archived_at IS NULL AND ur.user_id = $2)) ORDER BY pe.code")).
		WithArgs("usr_1", "usr_1").
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("samples.*").AddRow("test_results.read"))

	codes, err := ds.GetUserPermissionCodes(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"samples.*", "test_results.read"}, codes)
}

func TestGetUserRoleCodes_Empty(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery("SELECT r.code FROM roles r").
		WithArgs("usr_1").
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	codes, err := ds.GetUserRoleCodes(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.NotNil(t, codes)
	assert.Empty(t, codes)
}

func TestGetRoleByID_LoadsPermissions(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM roles r WHERE r.id = $1")).
		WithArgs("rol_1").
		WillReturnRows(sqlmock.NewRows(roleColumns).AddRow("rol_1", "admin", "Admin", nil, nil, now, now, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN role_permissions rp ON rp.permission_id = pe.id WHERE rp.role_id IN ($1)")).
		WithArgs("rol_1").
		WillReturnRows(sqlmock.NewRows(append(permissionColumns, "owner_id")).
			AddRow("prm_1", "*.*", "Everything", nil, nil, now, now, nil, nil, "rol_1"))

	r, err := ds.GetRoleByID(context.Background(), "rol_1")
	require.NoError(t, err)
	require.Len(t, r.Permissions, 1)
	assert.Equal(t, "*.*", r.Permissions[0].Code)
}

func TestRefreshTokens(t *testing.T) {
	ds, mock := newTestDatasource(t)
	expires := time.Now().Add(time.Hour).UTC()
	rt := &model.RefreshToken{UserID: "usr_1", Token: "opaque", ExpiresAt: expires}

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(sqlmock.AnyArg(), "usr_1", "opaque", expires, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens rt WHERE rt.token = $1 LIMIT 1")).
		WithArgs("opaque").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at"}).
			AddRow("rft_1", "usr_1", "opaque", expires, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens WHERE token = $1")).
		WithArgs("opaque").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ds.CreateRefreshToken(context.Background(), rt))
	assert.True(t, strings.HasPrefix(rt.ID, "rft_"))

	got, err := ds.GetRefreshToken(context.Background(), "opaque")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", got.UserID)

	err = ds.DeleteRefreshToken(context.Background(), "opaque")
	var apiErr apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
