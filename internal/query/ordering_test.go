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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrdering = MustOrdering(OrderingConfig{
	Fields: []OrderingField{
		{Name: "materialTypeName", Column: "mt.name"},
		{Name: "name", Column: "m.name"},
		{Name: "createdAt", Column: "m.created_at"},
	},
	Joins:   []Join{materialTypeJoin},
	Default: "name",
})

func TestOrdering_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []OrderClause
	}{
		{
			name:     "ascending and descending",
			raw:      "-createdAt,name",
			expected: []OrderClause{{"m.created_at", Desc}, {"m.name", Asc}},
		},
		{
			name:     "unknown tokens are dropped",
			raw:      "password,-name",
			expected: []OrderClause{{"m.name", Desc}},
		},
		{
			name:     "matching is case sensitive",
			raw:      "Name",
			expected: []OrderClause{{"m.name", Asc}},
		},
		{
			name:     "empty falls back to default",
			raw:      "",
			expected: []OrderClause{{"m.name", Asc}},
		},
		{
			name:     "every leading dash is stripped",
			raw:      "--createdAt",
			expected: []OrderClause{{"m.created_at", Desc}},
		},
		{
			name:     "blank tokens are skipped",
			raw:      " , materialTypeName ,",
			expected: []OrderClause{{"mt.name", Asc}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, testOrdering.New(tt.raw).Clauses())
		})
	}
}

func TestOrdering_Apply(t *testing.T) {
	spec := testOrdering.New("materialTypeName,-createdAt")

	sql, _, err := spec.Apply(Psql.Select("*").From("materials m")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM materials m ORDER BY mt.name ASC, m.created_at DESC", sql)
	assert.Equal(t, []Join{materialTypeJoin}, spec.Joins())
}

func TestOrdering_NoDefaultLeavesUnordered(t *testing.T) {
	cfg := MustOrdering(OrderingConfig{Fields: []OrderingField{{Name: "name", Column: "name"}}})
	spec := cfg.New("unknown")
	assert.Empty(t, spec.Clauses())

	sql, _, err := spec.Apply(Psql.Select("*").From("roles")).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "ORDER BY")

	spec = cfg.New("-name")
	assert.Equal(t, []OrderClause{{Column: "name", Direction: Desc}}, spec.Clauses())
}

func TestOrderingConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  OrderingConfig
	}{
		{name: "no fields", cfg: OrderingConfig{Default: "name"}},
		{name: "duplicate names", cfg: OrderingConfig{
			Fields:  []OrderingField{{Name: "name", Column: "a"}, {Name: "name", Column: "b"}},
			Default: "name",
		}},
		{name: "blank default", cfg: OrderingConfig{
			Fields:  []OrderingField{{Name: "name", Column: "a"}},
			Default: "  ",
		}},
		{name: "undeclared default", cfg: OrderingConfig{
			Fields:  []OrderingField{{Name: "name", Column: "a"}},
			Default: "-createdAt",
		}},
		{name: "duplicate joins", cfg: OrderingConfig{
			Fields:  []OrderingField{{Name: "name", Column: "a"}},
			Joins:   []Join{materialTypeJoin, materialTypeJoin},
			Default: "name",
		}},
		{name: "incomplete join", cfg: OrderingConfig{
			Fields:  []OrderingField{{Name: "name", Column: "a"}},
			Joins:   []Join{{Table: "materials"}},
			Default: "name",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfgErr ConfigError
			assert.True(t, errors.As(tt.cfg.Validate(), &cfgErr))
			assert.Panics(t, func() { MustOrdering(tt.cfg) })
		})
	}
}
