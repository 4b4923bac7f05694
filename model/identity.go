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

package model

import (
	"strings"
	"time"
)

type User struct {
	ID             string       `json:"id" db:"id"`
	FirstName      string       `json:"firstName" db:"first_name"`
	LastName       string       `json:"lastName" db:"last_name"`
	Email          string       `json:"email" db:"email"`
	HashedPassword string       `json:"-" db:"hashed_password"`
	IsActive       bool         `json:"isActive" db:"is_active"`
	IsSuperuser    bool         `json:"isSuperuser" db:"is_superuser"`
	LastLoginAt    *time.Time   `json:"lastLoginAt" db:"last_login_at"`
	DeletedAt      *time.Time   `json:"deletedAt,omitempty" db:"deleted_at"`
	Roles          []Role       `json:"roles,omitempty" db:"-"`
	Permissions    []Permission `json:"permissions,omitempty" db:"-"`
	Audit
}

// FullName joins the non-empty name parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Role struct {
	ID          string       `json:"id" db:"id"`
	Code        string       `json:"code" db:"code"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description" db:"description"`
	ArchivedAt  *time.Time   `json:"archivedAt,omitempty" db:"archived_at"`
	Permissions []Permission `json:"permissions,omitempty" db:"-"`
	Audit
}

type Permission struct {
	ID          string     `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	Audit
}

type RefreshToken struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserData is the authorization snapshot of a user, cached between requests.
type UserData struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	IsActive    bool     `json:"isActive"`
	IsSuperuser bool     `json:"isSuperuser"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// TokenPair is returned on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// AccessToken is returned on refresh.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// UserInput carries the writable fields of a user. A nil id list leaves the
// current assignments untouched; an empty one clears them.
type UserInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	IsActive      bool
	IsSuperuser   bool
	RoleIDs       []string
	PermissionIDs []string
}

type RoleInput struct {
	Code          string
	Name          string
	Description   *string
	PermissionIDs []string
}
