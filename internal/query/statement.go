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

import sq "github.com/Masterminds/squirrel"

// Psql builds Postgres statements with $n placeholders.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Statement is the base SELECT of a listing. Joins are eager joins needed
// only to populate the selected columns, so they are left out of COUNT.
type Statement struct {
	From    string
	Columns []string
	Joins   []Join
}

// Spec groups the specifications applied to one list request.
type Spec struct {
	Filter     *FilterSpec
	Search     *SearchSpec
	Ordering   *OrderingSpec
	Pagination Pagination
}

// CountBuilder returns the total-items statement: filters and search only.
func (s Spec) CountBuilder(st Statement) sq.SelectBuilder {
	b := Psql.Select("COUNT(*)").From(st.From)
	b = applyJoins(b, MergeJoins(s.Filter.Joins(), s.Search.Joins()))
	b = s.Filter.Apply(b)
	return s.Search.Apply(b)
}

// DataBuilder returns the page statement. Joins are de-duplicated by alias,
// then filter, search, ordering and pagination are applied in that order.
func (s Spec) DataBuilder(st Statement) sq.SelectBuilder {
	b := Psql.Select(st.Columns...).From(st.From)
	b = applyJoins(b, MergeJoins(st.Joins, s.Ordering.Joins(), s.Filter.Joins(), s.Search.Joins()))
	b = s.Filter.Apply(b)
	b = s.Search.Apply(b)
	b = s.Ordering.Apply(b)
	return s.Pagination.Apply(b)
}

// Select returns the bare statement with its eager joins, for single row
// and unpaginated reads.
func (st Statement) Select() sq.SelectBuilder {
	return applyJoins(Psql.Select(st.Columns...).From(st.From), st.Joins)
}
