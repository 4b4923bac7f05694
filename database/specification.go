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

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

const specificationEntity = "specification"

// CreateSpecification inserts a limits row. The (parameter, material,
// source) triple is unique.
func (d Datasource) CreateSpecification(ctx context.Context, s *model.Specification) error {
	ctx, span := tracer.Start(ctx, "Saving specification to db")
	defer span.End()

	s.ID = model.GenerateUUIDWithSuffix("spc")
	s.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, specificationEntity, query.Psql.Insert("specifications").
		Columns("id", "parameter_id", "material_id", "material_source_id", "min_value", "max_value",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(s.ID, s.ParameterID, s.MaterialID, s.MaterialSourceID, s.MinValue, s.MaxValue,
			s.CreatedAt, s.UpdatedAt, s.CreatedBy, s.UpdatedBy))
}

func (d Datasource) GetSpecificationByID(ctx context.Context, id string) (*model.Specification, error) {
	return get[model.Specification](ctx, d, specificationListing, specificationEntity, sq.Eq{"sp.id": id})
}

func (d Datasource) UpdateSpecification(ctx context.Context, s *model.Specification) error {
	ctx, span := tracer.Start(ctx, "Updating specification")
	defer span.End()

	s.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, specificationEntity, query.Psql.Update("specifications").
		Set("parameter_id", s.ParameterID).
		Set("material_id", s.MaterialID).
		Set("material_source_id", s.MaterialSourceID).
		Set("min_value", s.MinValue).
		Set("max_value", s.MaxValue).
		Set("updated_at", s.UpdatedAt).
		Set("updated_by", s.UpdatedBy).
		Where(sq.Eq{"id": s.ID}))
}

// DeleteSpecification hard deletes a limits row.
func (d Datasource) DeleteSpecification(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Deleting specification")
	defer span.End()

	res, err := exec(ctx, d.Conn, query.Psql.Delete("specifications").Where(sq.Eq{"id": id}))
	if err != nil {
		return mapError(err, specificationEntity)
	}
	return expectAffected(res, specificationEntity)
}

func (d Datasource) ListSpecifications(ctx context.Context, p query.Params) (model.Page[model.Specification], error) {
	return list[model.Specification](ctx, d, specificationListing, specificationEntity, p)
}

// FindSpecification returns the limits row of the triple, or nil when the
// laboratory has not defined one.
func (d Datasource) FindSpecification(ctx context.Context, parameterID, materialID, materialSourceID string) (*model.Specification, error) {
	ctx, span := tracer.Start(ctx, "Finding specification")
	defer span.End()

	s, err := getOne[model.Specification](ctx, d.Conn, specificationListing.statement, sq.Eq{
		"sp.parameter_id":       parameterID,
		"sp.material_id":        materialID,
		"sp.material_source_id": materialSourceID,
	})
	if sqlscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, mapError(err, specificationEntity)
	}
	return s, nil
}
