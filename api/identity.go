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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	model2 "github.com/jerry-enebeli/soillab/api/model"
)

// Login exchanges credentials for an access and refresh token pair.
//
// Responses:
// - 400 Bad Request: If email or password is missing.
// - 401 Unauthorized: If the credentials are wrong or the user is inactive.
// - 200 OK: With the token pair.
func (a Api) Login(c *gin.Context) {
	var req model2.Login
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh issues a new access token for a live refresh token.
func (a Api) Refresh(c *gin.Context) {
	var req model2.RefreshToken
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes a refresh token. Access tokens stay valid until they expire.
func (a Api) Logout(c *gin.Context) {
	var req model2.RefreshToken
	if !bindJSON(c, &req) {
		return
	}

	if err := a.soillab.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a Api) Me(c *gin.Context) {
	resp, err := a.soillab.Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser creates a user with an optional initial set of roles and
// direct permissions.
//
// Responses:
// - 400 Bad Request: If validation fails or a role or permission does not exist.
// - 409 Conflict: If the email is taken.
// - 201 Created: With the created user.
func (a Api) CreateUser(c *gin.Context) {
	var req model2.User
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if !validate(c, req.ValidateCreate()) {
		return
	}

	resp, err := a.soillab.CreateUser(c.Request.Context(), req.ToUserInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetUser(c *gin.Context) {
	resp, err := a.soillab.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateUser(c *gin.Context) {
	var req model2.User
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if !validate(c, req.ValidateUpdate()) {
		return
	}

	resp, err := a.soillab.UpdateUser(c.Request.Context(), c.Param("id"), req.ToUserInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllUsers(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListUsers(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetUserRoles replaces the roles of a user with the given ids.
func (a Api) SetUserRoles(c *gin.Context) {
	var req model2.IDs
	if !bindJSON(c, &req) {
		return
	}

	if err := a.soillab.SetUserRoles(c.Request.Context(), c.Param("id"), req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetUserPermissions replaces the direct permissions of a user.
func (a Api) SetUserPermissions(c *gin.Context) {
	var req model2.IDs
	if !bindJSON(c, &req) {
		return
	}

	if err := a.soillab.SetUserPermissions(c.Request.Context(), c.Param("id"), req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a Api) CreateRole(c *gin.Context) {
	var req model2.Role
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateRole(c.Request.Context(), req.ToRoleInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetRole(c *gin.Context) {
	resp, err := a.soillab.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateRole(c *gin.Context) {
	var req model2.Role
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateRole(c.Request.Context(), c.Param("id"), req.ToRoleInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllRoles(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListRoles(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) CreatePermission(c *gin.Context) {
	var req model2.Permission
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreatePermission(c.Request.Context(), req.ToPermission(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetPermission(c *gin.Context) {
	resp, err := a.soillab.GetPermission(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdatePermission(c *gin.Context) {
	var req model2.Permission
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdatePermission(c.Request.Context(), req.ToPermission(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllPermissions(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListPermissions(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
