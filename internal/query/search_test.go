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

var testSearch = MustSearch(SearchConfig{
	Fields: []SearchField{
		{Name: "materialTypeName", Column: "mt.name", Op: SearchIContains},
		{Name: "materialName", Column: "m.name", Op: SearchIContains},
	},
	Joins: []Join{materialTypeJoin},
})

func TestSearch_BlankQueryIsNoop(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		spec, err := testSearch.New(raw)
		require.NoError(t, err)
		assert.True(t, spec.IsEmpty())
		assert.Nil(t, spec.Joins())

		sql, _, err := spec.Apply(Psql.Select("*").From("materials m")).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM materials m", sql)
	}
}

func TestSearch_OrAcrossFields(t *testing.T) {
	spec, err := testSearch.New("  clay ")
	require.NoError(t, err)
	assert.Equal(t, "clay", spec.Query())
	assert.Equal(t, []Join{materialTypeJoin}, spec.Joins())

	sql, args, err := spec.Apply(Psql.Select("*").From("materials m")).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "(mt.name ILIKE $1 OR m.name ILIKE $2)")
	assert.Equal(t, []any{"%clay%", "%clay%"}, args)
}

func TestSearch_PatternPerOperator(t *testing.T) {
	tests := []struct {
		op      SearchOp
		keyword string
		pattern string
	}{
		{SearchLike, "LIKE", "sa%d_"},
		{SearchILike, "ILIKE", "sa%d_"},
		{SearchStartsWith, "LIKE", `sa\%d\_%`},
		{SearchIStartsWith, "ILIKE", `sa\%d\_%`},
		{SearchEndsWith, "LIKE", `%sa\%d\_`},
		{SearchIEndsWith, "ILIKE", `%sa\%d\_`},
		{SearchContains, "LIKE", `%sa\%d\_%`},
		{SearchIContains, "ILIKE", `%sa\%d\_%`},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			cfg := MustSearch(SearchConfig{Fields: []SearchField{{Name: "name", Column: "name", Op: tt.op}}})
			spec, err := cfg.New("sa%d_")
			require.NoError(t, err)

			sql, args, err := spec.Apply(Psql.Select("*").From("parameters")).ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, "name "+tt.keyword+" $1")
			assert.Equal(t, []any{tt.pattern}, args)
		})
	}
}

func TestSearch_MinLength(t *testing.T) {
	cfg := MustSearch(SearchConfig{
		Fields:    []SearchField{{Name: "name", Column: "name", Op: SearchIContains}},
		MinLength: 3,
	})

	_, err := cfg.New("ab")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchTooShort)
	assert.True(t, errors.Is(err, ErrValidation))

	spec, err := cfg.New("")
	require.NoError(t, err)
	assert.True(t, spec.IsEmpty())
}

func TestSearchConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  SearchConfig
	}{
		{name: "no fields", cfg: SearchConfig{}},
		{name: "duplicate names", cfg: SearchConfig{Fields: []SearchField{
			{Name: "name", Column: "a", Op: SearchIContains},
			{Name: "name", Column: "b", Op: SearchIContains},
		}}},
		{name: "unknown op", cfg: SearchConfig{Fields: []SearchField{{Name: "name", Column: "a", Op: "fuzzy"}}}},
		{name: "duplicate joins", cfg: SearchConfig{
			Fields: []SearchField{{Name: "name", Column: "a", Op: SearchIContains}},
			Joins:  []Join{materialTypeJoin, materialTypeJoin},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cfgErr ConfigError
			assert.True(t, errors.As(err, &cfgErr))
			assert.Panics(t, func() { MustSearch(tt.cfg) })
		})
	}
}
