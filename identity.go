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

package soillab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/cache"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const userDataVersionKey = "user-data:version"

// CreateUser hashes the password, stores the user and applies the requested
// role and permission assignments.
func (l *SoilLab) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	if err := l.ensureGrants(ctx, in.RoleIDs, in.PermissionIDs); err != nil {
		return nil, err
	}
	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, l.internalError(pkgerrors.Wrap(err, "hash password"))
	}

	u := &model.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		HashedPassword: hashed,
		IsActive:       in.IsActive,
		IsSuperuser:    in.IsSuperuser,
	}
	if err := l.datasource.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := l.assignGrants(ctx, u.ID, in); err != nil {
		return nil, err
	}
	return l.datasource.GetUserByID(ctx, u.ID)
}

func (l *SoilLab) GetUser(ctx context.Context, id string) (*model.User, error) {
	return l.datasource.GetUserByID(ctx, id)
}

// UpdateUser rewrites a user. An empty password keeps the current one.
// Deactivating a user revokes its refresh tokens.
func (l *SoilLab) UpdateUser(ctx context.Context, id string, in model.UserInput) (*model.User, error) {
	if err := l.ensureGrants(ctx, in.RoleIDs, in.PermissionIDs); err != nil {
		return nil, err
	}
	u := &model.User{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		IsActive:    in.IsActive,
		IsSuperuser: in.IsSuperuser,
	}
	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, l.internalError(pkgerrors.Wrap(err, "hash password"))
		}
		u.HashedPassword = hashed
	}
	if err := l.datasource.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := l.assignGrants(ctx, id, in); err != nil {
		return nil, err
	}
	if !u.IsActive || u.HashedPassword != "" {
		if err := l.datasource.DeleteUserRefreshTokens(ctx, id); err != nil {
			return nil, err
		}
	}
	l.invalidateUserData(ctx, id)
	return l.datasource.GetUserByID(ctx, id)
}

func (l *SoilLab) ListUsers(ctx context.Context, p query.Params) (model.Page[model.User], error) {
	return l.datasource.ListUsers(ctx, p)
}

// SetUserRoles replaces the roles of a user.
func (l *SoilLab) SetUserRoles(ctx context.Context, userID string, roleIDs []string) error {
	if err := l.ensureGrants(ctx, roleIDs, nil); err != nil {
		return err
	}
	if err := l.datasource.SetUserRoles(ctx, userID, roleIDs); err != nil {
		return err
	}
	l.invalidateUserData(ctx, userID)
	return nil
}

// SetUserPermissions replaces the direct permissions of a user.
func (l *SoilLab) SetUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	if err := l.ensureGrants(ctx, nil, permissionIDs); err != nil {
		return err
	}
	if err := l.datasource.SetUserPermissions(ctx, userID, permissionIDs); err != nil {
		return err
	}
	l.invalidateUserData(ctx, userID)
	return nil
}

func (l *SoilLab) ensureGrants(ctx context.Context, roleIDs, permissionIDs []string) error {
	if len(roleIDs) > 0 {
		if err := l.ensureExists(ctx, database.Roles, roleIDs...); err != nil {
			return err
		}
	}
	if len(permissionIDs) > 0 {
		if err := l.ensureExists(ctx, database.Permissions, permissionIDs...); err != nil {
			return err
		}
	}
	return nil
}

func (l *SoilLab) assignGrants(ctx context.Context, userID string, in model.UserInput) error {
	if in.RoleIDs != nil {
		if err := l.datasource.SetUserRoles(ctx, userID, in.RoleIDs); err != nil {
			return err
		}
	}
	if in.PermissionIDs != nil {
		if err := l.datasource.SetUserPermissions(ctx, userID, in.PermissionIDs); err != nil {
			return err
		}
	}
	return nil
}

func (l *SoilLab) CreateRole(ctx context.Context, in model.RoleInput) (*model.Role, error) {
	if err := l.ensureGrants(ctx, nil, in.PermissionIDs); err != nil {
		return nil, err
	}
	r := &model.Role{Code: in.Code, Name: in.Name, Description: in.Description}
	if err := l.datasource.CreateRole(ctx, r); err != nil {
		return nil, err
	}
	if in.PermissionIDs != nil {
		if err := l.datasource.SetRolePermissions(ctx, r.ID, in.PermissionIDs); err != nil {
			return nil, err
		}
	}
	return l.datasource.GetRoleByID(ctx, r.ID)
}

func (l *SoilLab) GetRole(ctx context.Context, id string) (*model.Role, error) {
	return l.datasource.GetRoleByID(ctx, id)
}

// UpdateRole rewrites a role and drops the cached grants of its members.
func (l *SoilLab) UpdateRole(ctx context.Context, id string, in model.RoleInput) (*model.Role, error) {
	if err := l.ensureGrants(ctx, nil, in.PermissionIDs); err != nil {
		return nil, err
	}
	r := &model.Role{ID: id, Code: in.Code, Name: in.Name, Description: in.Description}
	if err := l.datasource.UpdateRole(ctx, r); err != nil {
		return nil, err
	}
	if in.PermissionIDs != nil {
		if err := l.datasource.SetRolePermissions(ctx, id, in.PermissionIDs); err != nil {
			return nil, err
		}
	}
	l.invalidateRoleUsers(ctx, id)
	return l.datasource.GetRoleByID(ctx, id)
}

func (l *SoilLab) ListRoles(ctx context.Context, p query.Params) (model.Page[model.Role], error) {
	return l.datasource.ListRoles(ctx, p)
}

func (l *SoilLab) CreatePermission(ctx context.Context, p *model.Permission) (*model.Permission, error) {
	if err := l.datasource.CreatePermission(ctx, p); err != nil {
		return nil, err
	}
	return l.datasource.GetPermissionByID(ctx, p.ID)
}

func (l *SoilLab) GetPermission(ctx context.Context, id string) (*model.Permission, error) {
	return l.datasource.GetPermissionByID(ctx, id)
}

// UpdatePermission may rename a code that any user holds, so every cached
// grant set is dropped.
func (l *SoilLab) UpdatePermission(ctx context.Context, p *model.Permission) (*model.Permission, error) {
	if err := l.datasource.UpdatePermission(ctx, p); err != nil {
		return nil, err
	}
	l.invalidateAllUserData(ctx)
	return l.datasource.GetPermissionByID(ctx, p.ID)
}

func (l *SoilLab) ListPermissions(ctx context.Context, p query.Params) (model.Page[model.Permission], error) {
	return l.datasource.ListPermissions(ctx, p)
}

// UserData returns the authorization snapshot of a user. Snapshots are cached
// under a generation number so that a permission change can drop all of them
// with a single INCR.
func (l *SoilLab) UserData(ctx context.Context, userID string) (*model.UserData, error) {
	key, err := l.userDataKey(ctx, userID)
	if err != nil {
		logrus.WithError(err).Warn("user data cache unavailable")
		return l.loadUserData(ctx, userID)
	}

	data := &model.UserData{}
	err = l.cache.Get(ctx, key, data)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logrus.WithError(err).WithField("key", key).Warn("failed to read cached user data")
	}

	data, err = l.loadUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, key, data, l.permissionsTTL()); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to cache user data")
	}
	return data, nil
}

func (l *SoilLab) loadUserData(ctx context.Context, userID string) (*model.UserData, error) {
	u, err := l.datasource.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := l.datasource.GetUserRoleCodes(ctx, userID)
	if err != nil {
		return nil, err
	}
	permissions, err := l.datasource.GetUserPermissionCodes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.UserData{
		UserID:      u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive && u.DeletedAt == nil,
		IsSuperuser: u.IsSuperuser,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

func (l *SoilLab) userDataKey(ctx context.Context, userID string) (string, error) {
	version, err := l.redis.Get(ctx, userDataVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("user-data:%d:%s", version, userID), nil
}

func (l *SoilLab) invalidateUserData(ctx context.Context, userID string) {
	key, err := l.userDataKey(ctx, userID)
	if err == nil {
		err = l.cache.Delete(ctx, key)
	}
	if err != nil {
		// Fall back to dropping every snapshot.
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to drop cached user data")
		l.invalidateAllUserData(ctx)
	}
}

func (l *SoilLab) invalidateRoleUsers(ctx context.Context, roleID string) {
	userIDs, err := l.datasource.GetUserIDsByRole(ctx, roleID)
	if err != nil {
		logrus.WithError(err).WithField("role_id", roleID).Warn("failed to list role members")
		l.invalidateAllUserData(ctx)
		return
	}
	for _, id := range userIDs {
		l.invalidateUserData(ctx, id)
	}
}

func (l *SoilLab) invalidateAllUserData(ctx context.Context) {
	if err := l.redis.Incr(ctx, userDataVersionKey).Err(); err != nil {
		logrus.WithError(err).Error("failed to bump user data version")
	}
}

// EnsureSuperuser creates the configured system user, or promotes and
// reactivates it when the email is already taken. The password is reset
// either way.
func (l *SoilLab) EnsureSuperuser(ctx context.Context) (*model.User, error) {
	su := l.config.SystemUser
	if su.Email == "" || su.Password == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "system_user.email and system_user.password are required", nil)
	}
	in := model.UserInput{
		FirstName:   su.FirstName,
		LastName:    su.LastName,
		Email:       su.Email,
		Password:    su.Password,
		IsActive:    true,
		IsSuperuser: true,
	}

	existing, err := l.datasource.GetUserByEmail(ctx, su.Email)
	if isNotFound(err) {
		return l.CreateUser(ctx, in)
	}
	if err != nil {
		return nil, err
	}
	if in.FirstName == "" {
		in.FirstName = existing.FirstName
	}
	if in.LastName == "" {
		in.LastName = existing.LastName
	}
	return l.UpdateUser(ctx, existing.ID, in)
}
