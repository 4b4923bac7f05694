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

package soillab

import (
	"context"

	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

// ensureExists fails with INVALID_INPUT when any of ids has no row in t.
func (l *SoilLab) ensureExists(ctx context.Context, t database.Table, ids ...string) error {
	missing, err := l.datasource.MissingIDs(ctx, t, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apierror.RelatedNotFound(t.Entity, missing)
	}
	return nil
}

// Archive hides a reference row or soft deletes a business row.
func (l *SoilLab) Archive(ctx context.Context, t database.Table, id string) error {
	return l.setLifecycle(ctx, t, id, true)
}

// Restore reverts Archive.
func (l *SoilLab) Restore(ctx context.Context, t database.Table, id string) error {
	return l.setLifecycle(ctx, t, id, false)
}

func (l *SoilLab) setLifecycle(ctx context.Context, t database.Table, id string, set bool) error {
	if err := l.datasource.SetLifecycle(ctx, t, id, set); err != nil {
		return err
	}
	// Grants change with the lifecycle of users, roles and permissions.
	switch t.Name {
	case database.Users.Name:
		if set {
			if err := l.datasource.DeleteUserRefreshTokens(ctx, id); err != nil {
				return err
			}
		}
		l.invalidateUserData(ctx, id)
	case database.Roles.Name:
		l.invalidateRoleUsers(ctx, id)
	case database.Permissions.Name:
		l.invalidateAllUserData(ctx)
	}
	return nil
}

// Lookup returns the compact listing of a reference table.
func (l *SoilLab) Lookup(ctx context.Context, t database.Table, p query.Params) (model.Page[model.Lookup], error) {
	return l.datasource.Lookup(ctx, t, p)
}

func (l *SoilLab) CreateMaterialType(ctx context.Context, mt *model.MaterialType) (*model.MaterialType, error) {
	if err := l.datasource.CreateMaterialType(ctx, mt); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialTypeByID(ctx, mt.ID)
}

func (l *SoilLab) GetMaterialType(ctx context.Context, id string) (*model.MaterialType, error) {
	return l.datasource.GetMaterialTypeByID(ctx, id)
}

func (l *SoilLab) UpdateMaterialType(ctx context.Context, mt *model.MaterialType) (*model.MaterialType, error) {
	if err := l.datasource.UpdateMaterialType(ctx, mt); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialTypeByID(ctx, mt.ID)
}

func (l *SoilLab) ListMaterialTypes(ctx context.Context, p query.Params) (model.Page[model.MaterialType], error) {
	return l.datasource.ListMaterialTypes(ctx, p)
}

// CreateMaterial creates a material under an existing material type.
func (l *SoilLab) CreateMaterial(ctx context.Context, m *model.Material) (*model.Material, error) {
	if err := l.ensureExists(ctx, database.MaterialTypes, m.MaterialTypeID); err != nil {
		return nil, err
	}
	if err := l.datasource.CreateMaterial(ctx, m); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialByID(ctx, m.ID)
}

func (l *SoilLab) GetMaterial(ctx context.Context, id string) (*model.Material, error) {
	return l.datasource.GetMaterialByID(ctx, id)
}

func (l *SoilLab) UpdateMaterial(ctx context.Context, m *model.Material) (*model.Material, error) {
	if err := l.ensureExists(ctx, database.MaterialTypes, m.MaterialTypeID); err != nil {
		return nil, err
	}
	if err := l.datasource.UpdateMaterial(ctx, m); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialByID(ctx, m.ID)
}

func (l *SoilLab) ListMaterials(ctx context.Context, p query.Params) (model.Page[model.Material], error) {
	return l.datasource.ListMaterials(ctx, p)
}

func (l *SoilLab) CreateMaterialSource(ctx context.Context, ms *model.MaterialSource) (*model.MaterialSource, error) {
	if err := l.datasource.CreateMaterialSource(ctx, ms); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialSourceByID(ctx, ms.ID)
}

func (l *SoilLab) GetMaterialSource(ctx context.Context, id string) (*model.MaterialSource, error) {
	return l.datasource.GetMaterialSourceByID(ctx, id)
}

func (l *SoilLab) UpdateMaterialSource(ctx context.Context, ms *model.MaterialSource) (*model.MaterialSource, error) {
	if err := l.datasource.UpdateMaterialSource(ctx, ms); err != nil {
		return nil, err
	}
	return l.datasource.GetMaterialSourceByID(ctx, ms.ID)
}

func (l *SoilLab) ListMaterialSources(ctx context.Context, p query.Params) (model.Page[model.MaterialSource], error) {
	return l.datasource.ListMaterialSources(ctx, p)
}

func (l *SoilLab) CreateParameter(ctx context.Context, p *model.Parameter) (*model.Parameter, error) {
	if err := l.datasource.CreateParameter(ctx, p); err != nil {
		return nil, err
	}
	return l.datasource.GetParameterByID(ctx, p.ID)
}

func (l *SoilLab) GetParameter(ctx context.Context, id string) (*model.Parameter, error) {
	return l.datasource.GetParameterByID(ctx, id)
}

func (l *SoilLab) UpdateParameter(ctx context.Context, p *model.Parameter) (*model.Parameter, error) {
	if err := l.datasource.UpdateParameter(ctx, p); err != nil {
		return nil, err
	}
	return l.datasource.GetParameterByID(ctx, p.ID)
}

func (l *SoilLab) ListParameters(ctx context.Context, p query.Params) (model.Page[model.Parameter], error) {
	return l.datasource.ListParameters(ctx, p)
}

// CreateSample registers a sample of an existing material from an existing source.
func (l *SoilLab) CreateSample(ctx context.Context, s *model.Sample) (*model.Sample, error) {
	if err := l.ensureSampleRefs(ctx, s); err != nil {
		return nil, err
	}
	if err := l.datasource.CreateSample(ctx, s); err != nil {
		return nil, err
	}
	return l.datasource.GetSampleByID(ctx, s.ID)
}

func (l *SoilLab) GetSample(ctx context.Context, id string) (*model.Sample, error) {
	return l.datasource.GetSampleByID(ctx, id)
}

func (l *SoilLab) UpdateSample(ctx context.Context, s *model.Sample) (*model.Sample, error) {
	if err := l.ensureSampleRefs(ctx, s); err != nil {
		return nil, err
	}
	if err := l.datasource.UpdateSample(ctx, s); err != nil {
		return nil, err
	}
	return l.datasource.GetSampleByID(ctx, s.ID)
}

func (l *SoilLab) ListSamples(ctx context.Context, p query.Params) (model.Page[model.Sample], error) {
	return l.datasource.ListSamples(ctx, p)
}

func (l *SoilLab) ensureSampleRefs(ctx context.Context, s *model.Sample) error {
	if err := l.ensureExists(ctx, database.Materials, s.MaterialID); err != nil {
		return err
	}
	return l.ensureExists(ctx, database.MaterialSources, s.MaterialSourceID)
}

// CreateSpecification stores the limits of a parameter for a material and source.
func (l *SoilLab) CreateSpecification(ctx context.Context, s *model.Specification) (*model.Specification, error) {
	if err := l.validateSpecification(ctx, s); err != nil {
		return nil, err
	}
	if err := l.datasource.CreateSpecification(ctx, s); err != nil {
		return nil, err
	}
	return l.datasource.GetSpecificationByID(ctx, s.ID)
}

func (l *SoilLab) GetSpecification(ctx context.Context, id string) (*model.Specification, error) {
	return l.datasource.GetSpecificationByID(ctx, id)
}

func (l *SoilLab) UpdateSpecification(ctx context.Context, s *model.Specification) (*model.Specification, error) {
	if err := l.validateSpecification(ctx, s); err != nil {
		return nil, err
	}
	if err := l.datasource.UpdateSpecification(ctx, s); err != nil {
		return nil, err
	}
	return l.datasource.GetSpecificationByID(ctx, s.ID)
}

func (l *SoilLab) DeleteSpecification(ctx context.Context, id string) error {
	return l.datasource.DeleteSpecification(ctx, id)
}

func (l *SoilLab) ListSpecifications(ctx context.Context, p query.Params) (model.Page[model.Specification], error) {
	return l.datasource.ListSpecifications(ctx, p)
}

func (l *SoilLab) validateSpecification(ctx context.Context, s *model.Specification) error {
	if s.MinValue != nil && s.MaxValue != nil && *s.MinValue > *s.MaxValue {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "minValue must not exceed maxValue", nil)
	}
	if err := l.ensureExists(ctx, database.Parameters, s.ParameterID); err != nil {
		return err
	}
	if err := l.ensureExists(ctx, database.Materials, s.MaterialID); err != nil {
		return err
	}
	return l.ensureExists(ctx, database.MaterialSources, s.MaterialSourceID)
}
