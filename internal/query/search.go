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
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// SearchOp is the pattern-matching mode of a searchable field.
type SearchOp string

const (
	SearchLike        SearchOp = "like"
	SearchILike       SearchOp = "ilike"
	SearchStartsWith  SearchOp = "startswith"
	SearchIStartsWith SearchOp = "istartswith"
	SearchEndsWith    SearchOp = "endswith"
	SearchIEndsWith   SearchOp = "iendswith"
	SearchContains    SearchOp = "contains"
	SearchIContains   SearchOp = "icontains"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchField is a column matched by the free text query.
type SearchField struct {
	Name   string
	Column string
	Op     SearchOp
}

// SearchConfig declares the searchable fields of one listing. Build it with
// MustSearch so a broken declaration fails at start-up.
type SearchConfig struct {
	Fields []SearchField
	Joins  []Join
	// MinLength rejects shorter non-empty queries. Zero disables the check.
	MinLength int
}

// MustSearch validates cfg and panics with a ConfigError if it is malformed.
func MustSearch(cfg SearchConfig) SearchConfig {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func (c SearchConfig) Validate() error {
	if len(c.Fields) == 0 {
		return ConfigError{Kind: "search", Reason: "at least one field is required"}
	}
	names := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" || f.Column == "" {
			return ConfigError{Kind: "search", Reason: "field name and column are required"}
		}
		if _, ok := names[f.Name]; ok {
			return ConfigError{Kind: "search", Reason: fmt.Sprintf("duplicate field %q", f.Name)}
		}
		names[f.Name] = struct{}{}
		if _, err := searchPredicate(f, ""); err != nil {
			return ConfigError{Kind: "search", Reason: err.Error()}
		}
	}
	if err := validateJoins("search", c.Joins); err != nil {
		return err
	}
	return nil
}

// SearchSpec matches a trimmed query against every configured field with OR.
type SearchSpec struct {
	cfg   SearchConfig
	query string
}

// New binds a raw query. Blank input yields an empty spec.
func (c SearchConfig) New(raw string) (*SearchSpec, error) {
	q := strings.TrimSpace(raw)
	if q != "" && c.MinLength > 0 && len([]rune(q)) < c.MinLength {
		return nil, fmt.Errorf("%w: q must be at least %d characters", ErrSearchTooShort, c.MinLength)
	}
	return &SearchSpec{cfg: c, query: q}, nil
}

func (s *SearchSpec) IsEmpty() bool {
	return s == nil || s.query == ""
}

func (s *SearchSpec) Query() string {
	if s == nil {
		return ""
	}
	return s.query
}

func (s *SearchSpec) Joins() []Join {
	if s.IsEmpty() {
		return nil
	}
	return s.cfg.Joins
}

func (s *SearchSpec) Predicate() sq.Sqlizer {
	if s.IsEmpty() {
		return nil
	}
	or := make(sq.Or, 0, len(s.cfg.Fields))
	for _, f := range s.cfg.Fields {
		expr, _ := searchPredicate(f, s.query)
		or = append(or, expr)
	}
	return or
}

func (s *SearchSpec) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if p := s.Predicate(); p != nil {
		return b.Where(p)
	}
	return b
}

func searchPredicate(f SearchField, q string) (sq.Sqlizer, error) {
	escaped := likeEscaper.Replace(q)
	switch f.Op {
	case SearchLike:
		return sq.Like{f.Column: q}, nil
	case SearchILike:
		return sq.ILike{f.Column: q}, nil
	case SearchStartsWith:
		return sq.Like{f.Column: escaped + "%"}, nil
	case SearchIStartsWith:
		return sq.ILike{f.Column: escaped + "%"}, nil
	case SearchEndsWith:
		return sq.Like{f.Column: "%" + escaped}, nil
	case SearchIEndsWith:
		return sq.ILike{f.Column: "%" + escaped}, nil
	case SearchContains:
		return sq.Like{f.Column: "%" + escaped + "%"}, nil
	case SearchIContains:
		return sq.ILike{f.Column: "%" + escaped + "%"}, nil
	default:
		return nil, fmt.Errorf("%w: search %q on field %s", ErrUnsupportedOperator, f.Op, f.Name)
	}
}

func validateJoins(kind string, joins []Join) error {
	seen := make(map[string]struct{}, len(joins))
	for _, j := range joins {
		if j.Table == "" || j.On == "" {
			return ConfigError{Kind: kind, Reason: "join table and condition are required"}
		}
		if _, ok := seen[j.Key()]; ok {
			return ConfigError{Kind: kind, Reason: fmt.Sprintf("duplicate join %q", j.Key())}
		}
		seen[j.Key()] = struct{}{}
	}
	return nil
}
