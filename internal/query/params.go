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

package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	ParamPageNumber   = "page[number]"
	ParamPageSize     = "page[size]"
	ParamOrdering     = "ordering"
	ParamSearch       = "q"
	ParamShowArchived = "show_archived"
	ParamShowDeleted  = "show_deleted"

	defaultMaxFilters = 20
	defaultMaxCharLen = 1000
)

var filterKey = regexp.MustCompile(`^filter\[([A-Za-z0-9_]+)\]\[([A-Za-z]+)\]$`)

// SplitList splits a comma separated parameter. Items are trimmed, blanks are
// dropped and duplicates are removed keeping the first occurrence.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// PageDefaults bound the page size accepted from clients.
type PageDefaults struct {
	Size    int
	MaxSize int
}

// Params is the parsed list query string shared by every listing endpoint.
type Params struct {
	PageNumber   int
	PageSize     int
	Ordering     string
	Search       string
	ShowArchived bool
	ShowDeleted  bool

	filters map[string]map[Operator][]string
}

// ParseParams reads page[number], page[size], ordering, q, show_archived,
// show_deleted and filter[<field>][<op>] parameters.
// Parameters:
// - values: The raw request query string.
// - defaults: The page size used when none is given and the largest accepted one.
// Returns:
//   - Params: The parsed parameters. Filter values stay raw strings until a
//     listing parses them against its declared fields.
//   - error: A ValidationError naming the first rejected parameter.
func ParseParams(values url.Values, defaults PageDefaults) (Params, error) {
	p := Params{
		PageNumber: 1,
		PageSize:   defaults.Size,
		Ordering:   values.Get(ParamOrdering),
		Search:     values.Get(ParamSearch),
		filters:    make(map[string]map[Operator][]string),
	}

	var err error
	if raw := values.Get(ParamPageNumber); raw != "" {
		if p.PageNumber, err = strconv.Atoi(raw); err != nil {
			return Params{}, ValidationError{Param: ParamPageNumber, Message: "must be an integer"}
		}
	}
	if raw := values.Get(ParamPageSize); raw != "" {
		if p.PageSize, err = strconv.Atoi(raw); err != nil {
			return Params{}, ValidationError{Param: ParamPageSize, Message: "must be an integer"}
		}
		if defaults.MaxSize > 0 && p.PageSize > defaults.MaxSize {
			return Params{}, ValidationError{Param: ParamPageSize, Message: fmt.Sprintf("must not exceed %d", defaults.MaxSize)}
		}
	}
	if p.ShowArchived, err = parseBool(values, ParamShowArchived); err != nil {
		return Params{}, err
	}
	if p.ShowDeleted, err = parseBool(values, ParamShowDeleted); err != nil {
		return Params{}, err
	}

	count := 0
	for key, vals := range values {
		m := filterKey.FindStringSubmatch(key)
		if m == nil || len(vals) == 0 {
			continue
		}
		op := ResolveOperator(m[2])
		if op == "" {
			return Params{}, ValidationError{Param: key, Message: fmt.Sprintf("unknown operator %q", m[2])}
		}
		count++
		if count > defaultMaxFilters {
			return Params{}, ValidationError{Param: key, Message: fmt.Sprintf("exceeded maximum number of filters (%d)", defaultMaxFilters)}
		}
		if len(vals[0]) > defaultMaxCharLen {
			return Params{}, ValidationError{Param: key, Message: fmt.Sprintf("value exceeds maximum length (%d chars)", defaultMaxCharLen)}
		}
		if p.filters[m[1]] == nil {
			p.filters[m[1]] = make(map[Operator][]string)
		}
		p.filters[m[1]][op] = SplitList(vals[0])
	}

	return p, nil
}

// FilterValues returns the values passed as filter[field][op], if any.
func (p Params) FilterValues(field string, op Operator) []string {
	return p.filters[field][op]
}

// Pagination validates the page window of the request.
func (p Params) Pagination() (Pagination, error) {
	return NewPagination(p.PageNumber, p.PageSize)
}

func parseBool(values url.Values, key string) (bool, error) {
	raw := values.Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ValidationError{Param: key, Message: "must be a boolean"}
	}
	return b, nil
}
