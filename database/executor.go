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

package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

// eagerLoader fills relations of a fetched page in one extra query.
type eagerLoader[T any] func(ctx context.Context, items []T) error

// listPage runs the COUNT and DATA statements of spec over st, then the
// eager loaders, and wraps the result in a page envelope.
func listPage[T any](ctx context.Context, q querier, st query.Statement, spec query.Spec, loaders ...eagerLoader[T]) (model.Page[T], error) {
	countSQL, countArgs, err := spec.CountBuilder(st).ToSql()
	if err != nil {
		return model.Page[T]{}, err
	}
	var total int
	if err := sqlscan.Get(ctx, q, &total, countSQL, countArgs...); err != nil {
		return model.Page[T]{}, err
	}

	var items []T
	if total > 0 && spec.Pagination.Size > 0 && spec.Pagination.Offset() < uint64(total) {
		dataSQL, dataArgs, err := spec.DataBuilder(st).ToSql()
		if err != nil {
			return model.Page[T]{}, err
		}
		if err := sqlscan.Select(ctx, q, &items, dataSQL, dataArgs...); err != nil {
			return model.Page[T]{}, err
		}
	}

	if len(items) > 0 {
		for _, load := range loaders {
			if err := load(ctx, items); err != nil {
				return model.Page[T]{}, err
			}
		}
	}

	return model.NewPage(items, spec.Pagination.Number, spec.Pagination.TotalPages(total), total), nil
}

// getOne selects a single row of st matching where.
func getOne[T any](ctx context.Context, q querier, st query.Statement, where sq.Sqlizer) (*T, error) {
	stmt, args, err := st.Select().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	item := new(T)
	if err := sqlscan.Get(ctx, q, item, stmt, args...); err != nil {
		return nil, err
	}
	return item, nil
}

// selectAll selects every row of st matching where in the given order.
func selectAll[T any](ctx context.Context, q querier, st query.Statement, where sq.Sqlizer, orderBy ...string) ([]T, error) {
	stmt, args, err := st.Select().Where(where).OrderBy(orderBy...).ToSql()
	if err != nil {
		return nil, err
	}
	var items []T
	if err := sqlscan.Select(ctx, q, &items, stmt, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// exec builds and runs a write statement.
func exec(ctx context.Context, q querier, b sq.Sqlizer) (sql.Result, error) {
	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return q.ExecContext(ctx, stmt, args...)
}
