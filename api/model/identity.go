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
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jerry-enebeli/soillab/model"
)

const minPasswordLength = 8

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l *Login) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Email, validation.Required),
		validation.Field(&l.Password, validation.Required),
	)
}

// RefreshToken is the body of /auth/refresh and /auth/logout.
type RefreshToken struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshToken) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// User is the body of user create and update requests. On update an empty
// password keeps the current one, and omitted id lists keep the current
// assignments.
type User struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	IsActive      *bool    `json:"isActive"`
	IsSuperuser   bool     `json:"isSuperuser"`
	RoleIDs       []string `json:"roleIds"`
	PermissionIDs []string `json:"permissionIds"`
}

func (u *User) ValidateCreate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.FirstName, validation.Length(0, 150)),
		validation.Field(&u.LastName, validation.Length(0, 150)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.Required, validation.Length(minPasswordLength, 128)),
	)
}

func (u *User) ValidateUpdate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.FirstName, validation.Length(0, 150)),
		validation.Field(&u.LastName, validation.Length(0, 150)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.Length(minPasswordLength, 128)),
	)
}

// ToUserInput maps the request. Users are active unless stated otherwise.
func (u User) ToUserInput() model.UserInput {
	active := true
	if u.IsActive != nil {
		active = *u.IsActive
	}
	return model.UserInput{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Password:      u.Password,
		IsActive:      active,
		IsSuperuser:   u.IsSuperuser,
		RoleIDs:       u.RoleIDs,
		PermissionIDs: u.PermissionIDs,
	}
}

// IDs is the body of the assignment endpoints.
type IDs struct {
	IDs []string `json:"ids"`
}

func (i *IDs) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.IDs, validation.NotNil, validation.Each(validation.Required)),
	)
}

type Role struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	PermissionIDs []string `json:"permissionIds"`
}

func (r *Role) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, codeRules...),
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.PermissionIDs, validation.Each(validation.Required)),
	)
}

func (r Role) ToRoleInput() model.RoleInput {
	return model.RoleInput{
		Code:          r.Code,
		Name:          r.Name,
		Description:   r.Description,
		PermissionIDs: r.PermissionIDs,
	}
}

// Permission codes are "<resource>.<action>"; either part may be "*".
type Permission struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

var permissionCodeRules = []validation.Rule{
	validation.Required,
	validation.Length(3, 128),
	validation.Match(permissionCodePattern).Error("must look like <resource>.<action>"),
}

func (p *Permission) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Code, permissionCodeRules...),
		validation.Field(&p.Name, nameRules...),
	)
}

func (p Permission) ToPermission(id string) *model.Permission {
	return &model.Permission{ID: id, Code: p.Code, Name: p.Name, Description: p.Description}
}
