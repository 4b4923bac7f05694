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
	"github.com/gin-gonic/gin"
	"github.com/jerry-enebeli/soillab/internal/query"
)

// listParams parses the list query string of a request:
//
//   - page[number], page[size]: pagination, defaults from config
//   - ordering: comma separated field names, "-" prefix for descending
//   - q: free text search
//   - filter[<field>][<op>]: comma separated values, e.g. filter[materialTypeCode][in]=a,b
//   - show_archived, show_deleted: include hidden rows
//
// It writes a 400 response and returns false on malformed input.
func (a Api) listParams(c *gin.Context) (query.Params, bool) {
	p, err := query.ParseParams(c.Request.URL.Query(), a.soillab.PageDefaults())
	if err != nil {
		respondError(c, err)
		return p, false
	}
	return p, true
}
