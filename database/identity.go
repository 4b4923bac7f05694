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
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

const refreshTokenEntity = "refresh token"

// userAuthStatement is the user row including the password hash, used by login only.
var userAuthStatement = query.Statement{
	From:    "users u",
	Columns: append(append([]string{}, userListing.statement.Columns...), "u.hashed_password"),
}

// userRole, rolePermission and userPermission scan a related row together
// with the owner id it is attached to.
type userRole struct {
	UserID string `db:"owner_id"`
	model.Role
}

type rolePermission struct {
	RoleID string `db:"owner_id"`
	model.Permission
}

type userPermission struct {
	UserID string `db:"owner_id"`
	model.Permission
}

// CreateUser inserts a user. The password must already be hashed.
func (d Datasource) CreateUser(ctx context.Context, u *model.User) error {
	ctx, span := tracer.Start(ctx, "Saving user to db")
	defer span.End()

	u.ID = model.GenerateUUIDWithSuffix("usr")
	u.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, Users.Entity, query.Psql.Insert("users").
		Columns("id", "first_name", "last_name", "email", "hashed_password", "is_active", "is_superuser",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(u.ID, u.FirstName, u.LastName, u.Email, u.HashedPassword, u.IsActive, u.IsSuperuser,
			u.CreatedAt, u.UpdatedAt, u.CreatedBy, u.UpdatedBy))
}

// GetUserByID retrieves a user with roles and direct permissions.
func (d Datasource) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := get[model.User](ctx, d, userListing, Users.Entity, sq.Eq{"u.id": id})
	if err != nil {
		return nil, err
	}
	users := []model.User{*u}
	if err := d.loadUserRoles(ctx, users); err != nil {
		return nil, mapError(err, Users.Entity)
	}
	if err := d.loadUserPermissions(ctx, users); err != nil {
		return nil, mapError(err, Users.Entity)
	}
	return &users[0], nil
}

// GetUserByEmail retrieves a live user, password hash included, by case
// insensitive email.
func (d Datasource) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, span := tracer.Start(ctx, "Fetching user by email")
	defer span.End()

	u, err := getOne[model.User](ctx, d.Conn, userAuthStatement, sq.And{
		sq.Expr("lower(u.email) = lower(?)", email),
		sq.Eq{"u.deleted_at": nil},
	})
	if err != nil {
		return nil, mapError(err, Users.Entity)
	}
	return u, nil
}

// UpdateUser overwrites the profile and flags of a user. The password hash
// is only written when set.
func (d Datasource) UpdateUser(ctx context.Context, u *model.User) error {
	ctx, span := tracer.Start(ctx, "Updating user")
	defer span.End()

	u.Touch(auth.ActorID(ctx))
	b := query.Psql.Update("users").
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("email", u.Email).
		Set("is_active", u.IsActive).
		Set("is_superuser", u.IsSuperuser).
		Set("updated_at", u.UpdatedAt).
		Set("updated_by", u.UpdatedBy)
	if u.HashedPassword != "" {
		b = b.Set("hashed_password", u.HashedPassword)
	}
	return update(ctx, d.Conn, Users.Entity, b.Where(sq.Eq{"id": u.ID}))
}

func (d Datasource) ListUsers(ctx context.Context, p query.Params) (model.Page[model.User], error) {
	return list[model.User](ctx, d, userListing, Users.Entity, p, d.loadUserRoles)
}

// SetUserRoles replaces the roles of a user.
func (d Datasource) SetUserRoles(ctx context.Context, userID string, roleIDs []string) error {
	ctx, span := tracer.Start(ctx, "Setting user roles")
	defer span.End()

	return mapError(d.replaceLinks(ctx, "user_roles", "user_id", "role_id", userID, roleIDs), Users.Entity)
}

// SetUserPermissions replaces the direct permissions of a user.
func (d Datasource) SetUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	ctx, span := tracer.Start(ctx, "Setting user permissions")
	defer span.End()

	return mapError(d.replaceLinks(ctx, "user_permissions", "user_id", "permission_id", userID, permissionIDs), Users.Entity)
}

func (d Datasource) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	ctx, span := tracer.Start(ctx, "Stamping last login")
	defer span.End()

	return update(ctx, d.Conn, Users.Entity, query.Psql.Update("users").
		Set("last_login_at", at).
		Where(sq.Eq{"id": userID}))
}

// GetUserPermissionCodes returns the codes a user holds directly or through
// a live role. Archived permissions grant nothing.
func (d Datasource) GetUserPermissionCodes(ctx context.Context, userID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Fetching user permission codes")
	defer span.End()

	direct := query.Psql.Select("up.permission_id").From("user_permissions up").Where(sq.Eq{"up.user_id": userID})
	viaRoles := query.Psql.Select("rp.permission_id").From("role_permissions rp").
		Join("roles r ON r.id = rp.role_id").
		Join("user_roles ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": userID, "r.archived_at": nil})

	b := query.Psql.Select("DISTINCT pe.code").From("permissions pe").
		Where(sq.Eq{"pe.archived_at": nil}).
		Where(sq.Or{
			sq.Expr("pe.id IN (?)", direct),
			sq.Expr("pe.id IN (?)", viaRoles),
		}).
		OrderBy("pe.code")
	return d.selectCodes(ctx, b, Permissions.Entity)
}

// GetUserRoleCodes returns the codes of the live roles of a user.
func (d Datasource) GetUserRoleCodes(ctx context.Context, userID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Fetching user role codes")
	defer span.End()

	b := query.Psql.Select("r.code").From("roles r").
		Join("user_roles ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": userID, "r.archived_at": nil}).
		OrderBy("r.code")
	return d.selectCodes(ctx, b, Roles.Entity)
}

func (d Datasource) CreateRole(ctx context.Context, r *model.Role) error {
	ctx, span := tracer.Start(ctx, "Saving role to db")
	defer span.End()

	r.ID = model.GenerateUUIDWithSuffix("rol")
	r.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, Roles.Entity, query.Psql.Insert("roles").
		Columns("id", "code", "name", "description", "created_at", "updated_at", "created_by", "updated_by").
		Values(r.ID, r.Code, r.Name, r.Description, r.CreatedAt, r.UpdatedAt, r.CreatedBy, r.UpdatedBy))
}

// GetRoleByID retrieves a role with its permissions.
func (d Datasource) GetRoleByID(ctx context.Context, id string) (*model.Role, error) {
	r, err := get[model.Role](ctx, d, roleListing, Roles.Entity, sq.Eq{"r.id": id})
	if err != nil {
		return nil, err
	}
	roles := []model.Role{*r}
	if err := d.loadRolePermissions(ctx, roles); err != nil {
		return nil, mapError(err, Roles.Entity)
	}
	return &roles[0], nil
}

func (d Datasource) UpdateRole(ctx context.Context, r *model.Role) error {
	ctx, span := tracer.Start(ctx, "Updating role")
	defer span.End()

	r.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, Roles.Entity, query.Psql.Update("roles").
		Set("code", r.Code).
		Set("name", r.Name).
		Set("description", r.Description).
		Set("updated_at", r.UpdatedAt).
		Set("updated_by", r.UpdatedBy).
		Where(sq.Eq{"id": r.ID}))
}

func (d Datasource) ListRoles(ctx context.Context, p query.Params) (model.Page[model.Role], error) {
	return list[model.Role](ctx, d, roleListing, Roles.Entity, p, d.loadRolePermissions)
}

// SetRolePermissions replaces the permissions of a role.
func (d Datasource) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	ctx, span := tracer.Start(ctx, "Setting role permissions")
	defer span.End()

	return mapError(d.replaceLinks(ctx, "role_permissions", "role_id", "permission_id", roleID, permissionIDs), Roles.Entity)
}

// GetUserIDsByRole returns the users holding a role, for cache invalidation.
func (d Datasource) GetUserIDsByRole(ctx context.Context, roleID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Fetching role users")
	defer span.End()

	b := query.Psql.Select("ur.user_id").From("user_roles ur").Where(sq.Eq{"ur.role_id": roleID}).OrderBy("ur.user_id")
	return d.selectCodes(ctx, b, Roles.Entity)
}

func (d Datasource) CreatePermission(ctx context.Context, p *model.Permission) error {
	ctx, span := tracer.Start(ctx, "Saving permission to db")
	defer span.End()

	p.ID = model.GenerateUUIDWithSuffix("prm")
	p.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, Permissions.Entity, query.Psql.Insert("permissions").
		Columns("id", "code", "name", "description", "created_at", "updated_at", "created_by", "updated_by").
		Values(p.ID, p.Code, p.Name, p.Description, p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy))
}

func (d Datasource) GetPermissionByID(ctx context.Context, id string) (*model.Permission, error) {
	return get[model.Permission](ctx, d, permissionListing, Permissions.Entity, sq.Eq{"pe.id": id})
}

func (d Datasource) UpdatePermission(ctx context.Context, p *model.Permission) error {
	ctx, span := tracer.Start(ctx, "Updating permission")
	defer span.End()

	p.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, Permissions.Entity, query.Psql.Update("permissions").
		Set("code", p.Code).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("updated_at", p.UpdatedAt).
		Set("updated_by", p.UpdatedBy).
		Where(sq.Eq{"id": p.ID}))
}

func (d Datasource) ListPermissions(ctx context.Context, p query.Params) (model.Page[model.Permission], error) {
	return list[model.Permission](ctx, d, permissionListing, Permissions.Entity, p)
}

func (d Datasource) CreateRefreshToken(ctx context.Context, rt *model.RefreshToken) error {
	ctx, span := tracer.Start(ctx, "Saving refresh token")
	defer span.End()

	rt.ID = model.GenerateUUIDWithSuffix("rft")
	rt.CreatedAt = time.Now().UTC()
	return insert(ctx, d.Conn, refreshTokenEntity, query.Psql.Insert("refresh_tokens").
		Columns("id", "user_id", "token", "expires_at", "created_at").
		Values(rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt))
}

func (d Datasource) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Fetching refresh token")
	defer span.End()

	rt, err := getOne[model.RefreshToken](ctx, d.Conn, query.Statement{
		From:    "refresh_tokens rt",
		Columns: qualify("rt", "id", "user_id", "token", "expires_at", "created_at"),
	}, sq.Eq{"rt.token": token})
	if err != nil {
		return nil, mapError(err, refreshTokenEntity)
	}
	return rt, nil
}

func (d Datasource) DeleteRefreshToken(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Deleting refresh token")
	defer span.End()

	res, err := exec(ctx, d.Conn, query.Psql.Delete("refresh_tokens").Where(sq.Eq{"token": token}))
	if err != nil {
		return mapError(err, refreshTokenEntity)
	}
	return expectAffected(res, refreshTokenEntity)
}

// DeleteUserRefreshTokens ends every session of a user.
func (d Datasource) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "Deleting user refresh tokens")
	defer span.End()

	_, err := exec(ctx, d.Conn, query.Psql.Delete("refresh_tokens").Where(sq.Eq{"user_id": userID}))
	return mapError(err, refreshTokenEntity)
}

// replaceLinks swaps the rows of a link table owned by ownerID in one transaction.
func (d Datasource) replaceLinks(ctx context.Context, table, ownerColumn, targetColumn, ownerID string, targetIDs []string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, query.Psql.Delete(table).Where(sq.Eq{ownerColumn: ownerID})); err != nil {
			return err
		}
		if len(targetIDs) == 0 {
			return nil
		}
		b := query.Psql.Insert(table).Columns(ownerColumn, targetColumn)
		for _, id := range targetIDs {
			b = b.Values(ownerID, id)
		}
		_, err := exec(ctx, tx, b)
		return err
	})
}

func (d Datasource) selectCodes(ctx context.Context, b sq.SelectBuilder, entity string) ([]string, error) {
	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, mapError(err, entity)
	}
	codes := []string{}
	if err := sqlscan.Select(ctx, d.Conn, &codes, stmt, args...); err != nil {
		return nil, mapError(err, entity)
	}
	return codes, nil
}

func (d Datasource) loadUserRoles(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids, index := make([]string, len(users)), make(map[string]int, len(users))
	for i, u := range users {
		ids[i], index[u.ID] = u.ID, i
		users[i].Roles = []model.Role{}
	}

	rows, err := selectAll[userRole](ctx, d.Conn, query.Statement{
		From:    "roles r",
		Columns: append(append([]string{}, roleListing.statement.Columns...), "ur.user_id AS owner_id"),
		Joins:   []query.Join{{Table: "user_roles", Alias: "ur", On: "ur.role_id = r.id"}},
	}, sq.Eq{"ur.user_id": ids}, "r.name")
	if err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.UserID]
		users[i].Roles = append(users[i].Roles, row.Role)
	}
	return nil
}

func (d Datasource) loadUserPermissions(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids, index := make([]string, len(users)), make(map[string]int, len(users))
	for i, u := range users {
		ids[i], index[u.ID] = u.ID, i
		users[i].Permissions = []model.Permission{}
	}

	rows, err := selectAll[userPermission](ctx, d.Conn, query.Statement{
		From:    "permissions pe",
		Columns: append(append([]string{}, permissionListing.statement.Columns...), "up.user_id AS owner_id"),
		Joins:   []query.Join{{Table: "user_permissions", Alias: "up", On: "up.permission_id = pe.id"}},
	}, sq.Eq{"up.user_id": ids}, "pe.code")
	if err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.UserID]
		users[i].Permissions = append(users[i].Permissions, row.Permission)
	}
	return nil
}

func (d Datasource) loadRolePermissions(ctx context.Context, roles []model.Role) error {
	if len(roles) == 0 {
		return nil
	}
	ids, index := make([]string, len(roles)), make(map[string]int, len(roles))
	for i, r := range roles {
		ids[i], index[r.ID] = r.ID, i
		roles[i].Permissions = []model.Permission{}
	}

	rows, err := selectAll[rolePermission](ctx, d.Conn, query.Statement{
		From:    "permissions pe",
		Columns: append(append([]string{}, permissionListing.statement.Columns...), "rp.role_id AS owner_id"),
		Joins:   []query.Join{{Table: "role_permissions", Alias: "rp", On: "rp.permission_id = pe.id"}},
	}, sq.Eq{"rp.role_id": ids}, "pe.code")
	if err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.RoleID]
		roles[i].Permissions = append(roles[i].Permissions, row.Permission)
	}
	return nil
}
