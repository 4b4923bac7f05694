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

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/model"
)

// Authenticator resolves bearer tokens to users.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.UserData, error)
}

// AuthMiddleware authenticates bearer tokens and checks the permission
// derived from the matched route.
type AuthMiddleware struct {
	service Authenticator
}

func NewAuthMiddleware(service Authenticator) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// Authenticate returns a middleware that requires a valid access token and
// stores the user on the request context. It does not check permissions.
//
// Responses:
// - 401 Unauthorized: When the token is missing or invalid, or the user is inactive.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, apierror.APIError{Code: apierror.ErrUnauthorized, Message: "Authentication required. Use the Authorization: Bearer header"})
			return
		}

		user, err := m.service.Authenticate(c.Request.Context(), token)
		if err != nil {
			abort(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
		c.Set("user", user)
		c.Next()
	}
}

// Authorize returns a middleware that checks the authenticated user holds the
// permission guarding the route. It must run after Authenticate.
//
// Responses:
// - 403 Forbidden: When the user lacks the permission.
func (m *AuthMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.UserFromContext(c.Request.Context())
		if !ok {
			abort(c, apierror.APIError{Code: apierror.ErrUnauthorized, Message: "Authentication required"})
			return
		}

		required, ok := RequiredPermission(c.Request.Method, c.FullPath())
		if !ok {
			abort(c, apierror.APIError{Code: apierror.ErrForbidden, Message: "Unknown resource"})
			return
		}
		if !auth.Allowed(user, required) {
			abort(c, apierror.APIError{Code: apierror.ErrForbidden, Message: "Insufficient permissions for " + required})
			return
		}
		c.Next()
	}
}

// extractToken reads the token of a "Bearer <token>" Authorization header.
func extractToken(c *gin.Context) string {
	scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, auth.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

func abort(c *gin.Context, err error) {
	apiErr := apierror.FromError(err)
	status := apierror.MapErrorToHTTPStatus(apiErr)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", auth.BearerScheme)
	}
	c.AbortWithStatusJSON(status, apiErr)
}
