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
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

var errNoLookup = errors.New("table has no lookup listing")

// SetLifecycle stamps (set) or clears the archived_at or deleted_at column of a row.
func (d Datasource) SetLifecycle(ctx context.Context, t Table, id string, set bool) error {
	ctx, span := tracer.Start(ctx, "Setting "+t.Entity+" lifecycle")
	defer span.End()

	var at any
	if set {
		at = time.Now().UTC()
	}
	res, err := exec(ctx, d.Conn, query.Psql.Update(t.Name).
		Set(t.Lifecycle, at).
		Set("updated_at", time.Now().UTC()).
		Set("updated_by", auth.ActorID(ctx)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		span.RecordError(err)
		return mapError(err, t.Entity)
	}
	return expectAffected(res, t.Entity)
}

// Lookup returns the compact id/code/name page of a table, honouring the
// same filters, search and ordering as its full listing.
func (d Datasource) Lookup(ctx context.Context, t Table, p query.Params) (model.Page[model.Lookup], error) {
	ctx, span := tracer.Start(ctx, "Listing "+t.Entity+" lookups")
	defer span.End()

	if t.listing == nil || len(t.listing.lookup.Columns) == 0 {
		return model.Page[model.Lookup]{}, mapError(fmt.Errorf("%w: %s", errNoLookup, t.Name), t.Entity)
	}
	spec, err := t.listing.spec(p)
	if err != nil {
		return model.Page[model.Lookup]{}, err
	}
	page, err := listPage[model.Lookup](ctx, d.Conn, t.listing.lookup, spec)
	if err != nil {
		span.RecordError(err)
		return page, mapError(err, t.Entity)
	}
	return page, nil
}

// MissingIDs returns the ids, in input order, that have no row in the table.
func (d Datasource) MissingIDs(ctx context.Context, t Table, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, span := tracer.Start(ctx, "Checking "+t.Entity+" ids")
	defer span.End()

	stmt, args, err := query.Psql.Select("id").From(t.Name).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, mapError(err, t.Entity)
	}
	var found []string
	if err := sqlscan.Select(ctx, d.Conn, &found, stmt, args...); err != nil {
		span.RecordError(err)
		return nil, mapError(err, t.Entity)
	}

	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// list is the body shared by the List* methods.
func list[T any](ctx context.Context, d Datasource, l listing, entity string, p query.Params, loaders ...eagerLoader[T]) (model.Page[T], error) {
	ctx, span := tracer.Start(ctx, "Listing "+entity)
	defer span.End()

	spec, err := l.spec(p)
	if err != nil {
		return model.Page[T]{}, err
	}
	page, err := listPage(ctx, d.Conn, l.statement, spec, loaders...)
	if err != nil {
		span.RecordError(err)
		return page, mapError(err, entity)
	}
	return page, nil
}

// get is the body shared by the Get*ByID methods.
func get[T any](ctx context.Context, d Datasource, l listing, entity string, where sq.Sqlizer) (*T, error) {
	ctx, span := tracer.Start(ctx, "Fetching "+entity)
	defer span.End()

	item, err := getOne[T](ctx, d.Conn, l.statement, where)
	if err != nil {
		span.RecordError(err)
		return nil, mapError(err, entity)
	}
	return item, nil
}

// insert runs an INSERT and maps the driver error for entity.
func insert(ctx context.Context, q querier, entity string, b sq.InsertBuilder) error {
	if _, err := exec(ctx, q, b); err != nil {
		return mapError(err, entity)
	}
	return nil
}

// update runs an UPDATE that must touch a row.
func update(ctx context.Context, q querier, entity string, b sq.UpdateBuilder) error {
	res, err := exec(ctx, q, b)
	if err != nil {
		return mapError(err, entity)
	}
	return expectAffected(res, entity)
}
