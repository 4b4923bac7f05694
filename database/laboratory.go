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
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

// CreateMaterialType inserts a new material type.
func (d Datasource) CreateMaterialType(ctx context.Context, mt *model.MaterialType) error {
	ctx, span := tracer.Start(ctx, "Saving material type to db")
	defer span.End()

	mt.ID = model.GenerateUUIDWithSuffix("mtt")
	mt.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, MaterialTypes.Entity, query.Psql.Insert("material_types").
		Columns("id", "code", "name", "created_at", "updated_at", "created_by", "updated_by").
		Values(mt.ID, mt.Code, mt.Name, mt.CreatedAt, mt.UpdatedAt, mt.CreatedBy, mt.UpdatedBy))
}

func (d Datasource) GetMaterialTypeByID(ctx context.Context, id string) (*model.MaterialType, error) {
	return get[model.MaterialType](ctx, d, materialTypeListing, MaterialTypes.Entity, sq.Eq{"mt.id": id})
}

// UpdateMaterialType overwrites the editable fields of a material type.
func (d Datasource) UpdateMaterialType(ctx context.Context, mt *model.MaterialType) error {
	ctx, span := tracer.Start(ctx, "Updating material type")
	defer span.End()

	mt.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, MaterialTypes.Entity, query.Psql.Update("material_types").
		Set("code", mt.Code).
		Set("name", mt.Name).
		Set("updated_at", mt.UpdatedAt).
		Set("updated_by", mt.UpdatedBy).
		Where(sq.Eq{"id": mt.ID}))
}

func (d Datasource) ListMaterialTypes(ctx context.Context, p query.Params) (model.Page[model.MaterialType], error) {
	return list[model.MaterialType](ctx, d, materialTypeListing, MaterialTypes.Entity, p)
}

// CreateMaterial inserts a new material. The material type must exist.
func (d Datasource) CreateMaterial(ctx context.Context, m *model.Material) error {
	ctx, span := tracer.Start(ctx, "Saving material to db")
	defer span.End()

	m.ID = model.GenerateUUIDWithSuffix("mat")
	m.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, Materials.Entity, query.Psql.Insert("materials").
		Columns("id", "material_type_id", "name", "created_at", "updated_at", "created_by", "updated_by").
		Values(m.ID, m.MaterialTypeID, m.Name, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy))
}

func (d Datasource) GetMaterialByID(ctx context.Context, id string) (*model.Material, error) {
	return get[model.Material](ctx, d, materialListing, Materials.Entity, sq.Eq{"m.id": id})
}

func (d Datasource) UpdateMaterial(ctx context.Context, m *model.Material) error {
	ctx, span := tracer.Start(ctx, "Updating material")
	defer span.End()

	m.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, Materials.Entity, query.Psql.Update("materials").
		Set("material_type_id", m.MaterialTypeID).
		Set("name", m.Name).
		Set("updated_at", m.UpdatedAt).
		Set("updated_by", m.UpdatedBy).
		Where(sq.Eq{"id": m.ID}))
}

func (d Datasource) ListMaterials(ctx context.Context, p query.Params) (model.Page[model.Material], error) {
	return list[model.Material](ctx, d, materialListing, Materials.Entity, p)
}

func (d Datasource) CreateMaterialSource(ctx context.Context, ms *model.MaterialSource) error {
	ctx, span := tracer.Start(ctx, "Saving material source to db")
	defer span.End()

	ms.ID = model.GenerateUUIDWithSuffix("msr")
	ms.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, MaterialSources.Entity, query.Psql.Insert("material_sources").
		Columns("id", "code", "name", "created_at", "updated_at", "created_by", "updated_by").
		Values(ms.ID, ms.Code, ms.Name, ms.CreatedAt, ms.UpdatedAt, ms.CreatedBy, ms.UpdatedBy))
}

func (d Datasource) GetMaterialSourceByID(ctx context.Context, id string) (*model.MaterialSource, error) {
	return get[model.MaterialSource](ctx, d, materialSourceListing, MaterialSources.Entity, sq.Eq{"ms.id": id})
}

func (d Datasource) UpdateMaterialSource(ctx context.Context, ms *model.MaterialSource) error {
	ctx, span := tracer.Start(ctx, "Updating material source")
	defer span.End()

	ms.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, MaterialSources.Entity, query.Psql.Update("material_sources").
		Set("code", ms.Code).
		Set("name", ms.Name).
		Set("updated_at", ms.UpdatedAt).
		Set("updated_by", ms.UpdatedBy).
		Where(sq.Eq{"id": ms.ID}))
}

func (d Datasource) ListMaterialSources(ctx context.Context, p query.Params) (model.Page[model.MaterialSource], error) {
	return list[model.MaterialSource](ctx, d, materialSourceListing, MaterialSources.Entity, p)
}

func (d Datasource) CreateParameter(ctx context.Context, p *model.Parameter) error {
	ctx, span := tracer.Start(ctx, "Saving parameter to db")
	defer span.End()

	p.ID = model.GenerateUUIDWithSuffix("par")
	p.Stamp(auth.ActorID(ctx))
	return insert(ctx, d.Conn, Parameters.Entity, query.Psql.Insert("parameters").
		Columns("id", "code", "name", "units", "created_at", "updated_at", "created_by", "updated_by").
		Values(p.ID, p.Code, p.Name, p.Units, p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy))
}

func (d Datasource) GetParameterByID(ctx context.Context, id string) (*model.Parameter, error) {
	return get[model.Parameter](ctx, d, parameterListing, Parameters.Entity, sq.Eq{"p.id": id})
}

func (d Datasource) UpdateParameter(ctx context.Context, p *model.Parameter) error {
	ctx, span := tracer.Start(ctx, "Updating parameter")
	defer span.End()

	p.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, Parameters.Entity, query.Psql.Update("parameters").
		Set("code", p.Code).
		Set("name", p.Name).
		Set("units", p.Units).
		Set("updated_at", p.UpdatedAt).
		Set("updated_by", p.UpdatedBy).
		Where(sq.Eq{"id": p.ID}))
}

func (d Datasource) ListParameters(ctx context.Context, p query.Params) (model.Page[model.Parameter], error) {
	return list[model.Parameter](ctx, d, parameterListing, Parameters.Entity, p)
}
