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
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// Operator represents supported filter operators.
type Operator string

const (
	OpEqual              Operator = "eq"
	OpNotEqual           Operator = "ne"
	OpGreaterThan        Operator = "gt"
	OpGreaterThanOrEqual Operator = "gte"
	OpLessThan           Operator = "lt"
	OpLessThanOrEqual    Operator = "lte"
	OpIn                 Operator = "in"
	OpLike               Operator = "like"
	OpILike              Operator = "ilike"
)

// ResolveOperator maps a query string operator, including its common aliases,
// to an Operator. It returns an empty Operator for unknown input.
func ResolveOperator(s string) Operator {
	switch strings.ToLower(s) {
	case "eq":
		return OpEqual
	case "ne", "neq":
		return OpNotEqual
	case "gt":
		return OpGreaterThan
	case "gte", "gteq":
		return OpGreaterThanOrEqual
	case "lt":
		return OpLessThan
	case "lte", "lteq":
		return OpLessThanOrEqual
	case "in":
		return OpIn
	case "like":
		return OpLike
	case "ilike":
		return OpILike
	default:
		return ""
	}
}

// Filter is one column condition. Values are alternatives: the column matches
// when any of them does. For OpIn every value is itself a list.
type Filter struct {
	Column string
	Op     Operator
	Values []any
	Joins  []Join
}

// FilterSpec combines filters with AND across filters and OR within a filter.
type FilterSpec struct {
	filters []Filter
}

// NewFilter builds a FilterSpec. Filters without values are ignored, so an
// absent query parameter never narrows the result. A nil value is kept and
// renders as IS NULL (or IS NOT NULL for OpNotEqual).
func NewFilter(filters ...Filter) (*FilterSpec, error) {
	spec := &FilterSpec{}
	for _, f := range filters {
		if len(f.Values) == 0 {
			continue
		}
		if _, err := predicate(f.Column, f.Op, nil); err != nil {
			return nil, err
		}
		spec.filters = append(spec.filters, f)
	}
	return spec, nil
}

// StringValues converts parsed string values to the []any a Filter expects.
func StringValues(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func (f *FilterSpec) IsEmpty() bool {
	return f == nil || len(f.filters) == 0
}

// Joins returns the joins the active filters depend on.
func (f *FilterSpec) Joins() []Join {
	if f.IsEmpty() {
		return nil
	}
	groups := make([][]Join, 0, len(f.filters))
	for _, filter := range f.filters {
		groups = append(groups, filter.Joins)
	}
	return MergeJoins(groups...)
}

// Predicate returns the combined WHERE expression, or nil when empty.
func (f *FilterSpec) Predicate() sq.Sqlizer {
	if f.IsEmpty() {
		return nil
	}
	and := make(sq.And, 0, len(f.filters))
	for _, filter := range f.filters {
		or := make(sq.Or, 0, len(filter.Values))
		for _, v := range filter.Values {
			// Operators were checked in NewFilter.
			expr, _ := predicate(filter.Column, filter.Op, v)
			or = append(or, expr)
		}
		and = append(and, or)
	}
	return and
}

func (f *FilterSpec) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if p := f.Predicate(); p != nil {
		return b.Where(p)
	}
	return b
}

func predicate(column string, op Operator, value any) (sq.Sqlizer, error) {
	switch op {
	case OpEqual, OpIn:
		return sq.Eq{column: value}, nil
	case OpNotEqual:
		return sq.NotEq{column: value}, nil
	case OpGreaterThan:
		return sq.Gt{column: value}, nil
	case OpGreaterThanOrEqual:
		return sq.GtOrEq{column: value}, nil
	case OpLessThan:
		return sq.Lt{column: value}, nil
	case OpLessThanOrEqual:
		return sq.LtOrEq{column: value}, nil
	case OpLike:
		return sq.Like{column: value}, nil
	case OpILike:
		return sq.ILike{column: value}, nil
	default:
		return nil, fmt.Errorf("%w: %q on column %s", ErrUnsupportedOperator, op, column)
	}
}

var operators = []Operator{
	OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual,
	OpLessThan, OpLessThanOrEqual, OpIn, OpLike, OpILike,
}

// ValueKind is the type a filter value is parsed into before it reaches the
// database. The zero value passes strings through unchanged.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindNumber
	KindTime
)

// dateLayout is accepted next to RFC 3339 for KindTime values.
const dateLayout = "2006-01-02"

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindTime:
		return "timestamp"
	default:
		return "string"
	}
}

// parse converts a raw query string value to the Go type of the kind.
func (k ValueKind) parse(raw string) (any, error) {
	switch k {
	case KindBool:
		return strconv.ParseBool(raw)
	case KindNumber:
		return decimal.NewFromString(raw)
	case KindTime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC(), nil
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	default:
		return raw, nil
	}
}

// FilterField exposes a column to filter[<Name>][<op>] request parameters.
// Kind controls how the raw values are parsed.
type FilterField struct {
	Name   string
	Column string
	Kind   ValueKind
	Joins  []Join
}

// FiltersFromParams builds the filters requested for the declared fields.
// Parameters naming undeclared fields are ignored. A value that does not
// parse as the field's kind, or a pattern operator on a non string field,
// is reported as a ValidationError.
func FiltersFromParams(p Params, fields ...FilterField) ([]Filter, error) {
	var out []Filter
	for _, field := range fields {
		for _, op := range operators {
			values := p.FilterValues(field.Name, op)
			if len(values) == 0 {
				continue
			}
			param := fmt.Sprintf("filter[%s][%s]", field.Name, op)
			f := Filter{Column: field.Column, Op: op, Joins: field.Joins}
			if field.Kind == KindString {
				if op == OpIn {
					f.Values = []any{values}
				} else {
					f.Values = StringValues(values)
				}
				out = append(out, f)
				continue
			}

			if op == OpLike || op == OpILike {
				return nil, ValidationError{Param: param, Message: fmt.Sprintf("operator %q is not supported for %s fields", op, field.Kind)}
			}
			parsed := make([]any, 0, len(values))
			for _, raw := range values {
				v, err := field.Kind.parse(raw)
				if err != nil {
					return nil, ValidationError{Param: param, Message: fmt.Sprintf("%q is not a valid %s", raw, field.Kind)}
				}
				parsed = append(parsed, v)
			}
			if op == OpIn {
				f.Values = []any{parsed}
			} else {
				f.Values = parsed
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// NotSet matches rows where column is NULL unless show is true. It expresses
// the default hiding of archived and deleted rows.
func NotSet(column string, show bool) Filter {
	if show {
		return Filter{Column: column, Op: OpEqual}
	}
	return Filter{Column: column, Op: OpEqual, Values: []any{nil}}
}
