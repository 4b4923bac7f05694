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

// Direction represents the sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderingField maps a public sort name to a column.
type OrderingField struct {
	Name   string
	Column string
}

// OrderClause is one resolved ORDER BY term.
type OrderClause struct {
	Column    string
	Direction Direction
}

func (c OrderClause) String() string {
	return fmt.Sprintf("%s %s", c.Column, c.Direction)
}

// OrderingConfig declares the sortable fields of one listing.
type OrderingConfig struct {
	Fields  []OrderingField
	Joins   []Join
	Default string

	byName map[string]string
}

// MustOrdering validates cfg and panics with a ConfigError if it is malformed.
// Declarations are package level variables, so the check runs once per type.
func MustOrdering(cfg OrderingConfig) OrderingConfig {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	cfg.byName = make(map[string]string, len(cfg.Fields))
	for _, f := range cfg.Fields {
		cfg.byName[f.Name] = f.Column
	}
	return cfg
}

func (c OrderingConfig) Validate() error {
	if len(c.Fields) == 0 {
		return ConfigError{Kind: "ordering", Reason: "at least one field is required"}
	}
	names := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" || f.Column == "" {
			return ConfigError{Kind: "ordering", Reason: "field name and column are required"}
		}
		if _, ok := names[f.Name]; ok {
			return ConfigError{Kind: "ordering", Reason: fmt.Sprintf("duplicate field %q", f.Name)}
		}
		names[f.Name] = f.Column
	}
	if err := validateJoins("ordering", c.Joins); err != nil {
		return err
	}
	if c.Default == "" {
		return nil
	}
	if strings.TrimSpace(c.Default) == "" {
		return ConfigError{Kind: "ordering", Reason: "default ordering must not be blank"}
	}
	for _, token := range SplitList(c.Default) {
		name, _ := parseToken(token)
		if _, ok := names[name]; !ok {
			return ConfigError{Kind: "ordering", Reason: fmt.Sprintf("default field %q is not declared", name)}
		}
	}
	return nil
}

// OrderingSpec is the resolved ordering of one request.
type OrderingSpec struct {
	clauses []OrderClause
	joins   []Join
}

// New resolves a raw ordering string such as "-receivedAt,name". Unknown
// names are dropped. When nothing valid remains the default is used.
func (c OrderingConfig) New(raw string) *OrderingSpec {
	clauses := c.resolve(raw)
	if len(clauses) == 0 && c.Default != "" {
		clauses = c.resolve(c.Default)
	}
	return &OrderingSpec{clauses: clauses, joins: c.Joins}
}

func (c OrderingConfig) resolve(raw string) []OrderClause {
	var clauses []OrderClause
	for _, token := range SplitList(raw) {
		name, dir := parseToken(token)
		column, ok := c.lookup(name)
		if !ok {
			continue
		}
		clauses = append(clauses, OrderClause{Column: column, Direction: dir})
	}
	return clauses
}

func (c OrderingConfig) lookup(name string) (string, bool) {
	if c.byName != nil {
		column, ok := c.byName[name]
		return column, ok
	}
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Column, true
		}
	}
	return "", false
}

// parseToken strips every leading "-"; any prefix means descending.
func parseToken(token string) (string, Direction) {
	if strings.HasPrefix(token, "-") {
		return strings.TrimLeft(token, "-"), Desc
	}
	return token, Asc
}

func (o *OrderingSpec) Clauses() []OrderClause {
	if o == nil {
		return nil
	}
	return o.clauses
}

func (o *OrderingSpec) Joins() []Join {
	if o == nil {
		return nil
	}
	return o.joins
}

func (o *OrderingSpec) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if o == nil || len(o.clauses) == 0 {
		return b
	}
	terms := make([]string, len(o.clauses))
	for i, c := range o.clauses {
		terms[i] = c.String()
	}
	return b.OrderBy(terms...)
}
