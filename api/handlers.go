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
	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/apierror"
)

type validatable interface {
	Validate() error
}

// respondError writes err as an APIError with the matching status.
func respondError(c *gin.Context, err error) {
	apiErr := apierror.FromError(err)
	c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
}

// bindJSON decodes the body into dst and runs its validation. It writes the
// error response and returns false when either step fails.
func bindJSON(c *gin.Context, dst validatable) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, err)
		return false
	}
	return validate(c, dst.Validate())
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, apierror.APIError{Code: apierror.ErrBadRequest, Message: err.Error()})
}

func validate(c *gin.Context, err error) bool {
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.APIError{Code: apierror.ErrInvalidInput, Message: "validation failed", Details: err})
		return false
	}
	return true
}

// archive soft deletes business rows and archives reference rows.
//
// Responses:
// - 204 No Content: On success.
// - 404 Not Found: If no row has the id.
func (a Api) archive(t database.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.soillab.Archive(c.Request.Context(), t, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// restore reverts archive.
func (a Api) restore(t database.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.soillab.Restore(c.Request.Context(), t, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// lookup serves the compact paginated listing used by pickers.
func (a Api) lookup(t database.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := a.listParams(c)
		if !ok {
			return
		}
		page, err := a.soillab.Lookup(c.Request.Context(), t, p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
