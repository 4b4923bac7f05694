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
	"net/http"
	"strings"

	"github.com/jerry-enebeli/soillab/internal/auth"
)

// APIPrefix is the path prefix of every versioned route.
const APIPrefix = "/api/v1"

// methodToAction maps HTTP methods to permission actions.
var methodToAction = map[string]string{
	http.MethodGet:    auth.ActionRead,
	http.MethodHead:   auth.ActionRead,
	http.MethodPost:   auth.ActionCreate,
	http.MethodPut:    auth.ActionUpdate,
	http.MethodPatch:  auth.ActionUpdate,
	http.MethodDelete: auth.ActionDelete,
}

// RequiredPermission derives the permission code guarding a route from its
// registered path pattern and method. The first segment after the API prefix
// names the resource, with hyphens turned into underscores. ok is false for
// paths outside the API prefix.
func RequiredPermission(method, fullPath string) (code string, ok bool) {
	rest, found := strings.CutPrefix(fullPath, APIPrefix+"/")
	if !found {
		return "", false
	}
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		return "", false
	}
	resource := strings.ReplaceAll(parts[0], "-", "_")

	action, known := methodToAction[method]
	if !known {
		return "", false
	}
	switch parts[len(parts)-1] {
	case "restore":
		action = auth.ActionRestore
	case "report":
		action = auth.ActionRead
	}
	return auth.PermissionCode(resource, action), true
}
