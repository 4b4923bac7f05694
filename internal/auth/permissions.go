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

package auth

import (
	"strings"

	"github.com/jerry-enebeli/soillab/model"
)

const Wildcard = "*"

// Permission codes are "<resource>.<action>".
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionRestore = "restore"
)

// PermissionCode joins a resource and an action.
func PermissionCode(resource, action string) string {
	return resource + "." + action
}

// Grants reports whether the granted code covers the required one. Either
// half of the granted code may be a wildcard.
func Grants(granted, required string) bool {
	gr, ga, ok := strings.Cut(granted, ".")
	if !ok {
		return false
	}
	rr, ra, ok := strings.Cut(required, ".")
	if !ok {
		return false
	}
	return (gr == Wildcard || gr == rr) && (ga == Wildcard || ga == ra)
}

// Allowed reports whether user may perform required. Superusers are always
// allowed and inactive users never are.
func Allowed(user *model.UserData, required string) bool {
	if user == nil || !user.IsActive {
		return false
	}
	if user.IsSuperuser {
		return true
	}
	for _, granted := range user.Permissions {
		if Grants(granted, required) {
			return true
		}
	}
	return false
}
