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

package mocks

import (
	"context"
	"time"

	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

var _ database.IDataSource = (*MockDataSource)(nil)

func (m *MockDataSource) SetLifecycle(ctx context.Context, t database.Table, id string, set bool) error {
	args := m.Called(ctx, t, id, set)
	return args.Error(0)
}

func (m *MockDataSource) Lookup(ctx context.Context, t database.Table, p query.Params) (model.Page[model.Lookup], error) {
	args := m.Called(ctx, t, p)
	return args.Get(0).(model.Page[model.Lookup]), args.Error(1)
}

func (m *MockDataSource) MissingIDs(ctx context.Context, t database.Table, ids []string) ([]string, error) {
	args := m.Called(ctx, t, ids)
	var result []string
	if v := args.Get(0); v != nil {
		result = v.([]string)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) CreateMaterialType(ctx context.Context, mt *model.MaterialType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockDataSource) GetMaterialTypeByID(ctx context.Context, id string) (*model.MaterialType, error) {
	args := m.Called(ctx, id)
	var result *model.MaterialType
	if v := args.Get(0); v != nil {
		result = v.(*model.MaterialType)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateMaterialType(ctx context.Context, mt *model.MaterialType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockDataSource) ListMaterialTypes(ctx context.Context, p query.Params) (model.Page[model.MaterialType], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.MaterialType]), args.Error(1)
}

func (m *MockDataSource) CreateMaterial(ctx context.Context, material *model.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockDataSource) GetMaterialByID(ctx context.Context, id string) (*model.Material, error) {
	args := m.Called(ctx, id)
	var result *model.Material
	if v := args.Get(0); v != nil {
		result = v.(*model.Material)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateMaterial(ctx context.Context, material *model.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockDataSource) ListMaterials(ctx context.Context, p query.Params) (model.Page[model.Material], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Material]), args.Error(1)
}

func (m *MockDataSource) CreateMaterialSource(ctx context.Context, ms *model.MaterialSource) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockDataSource) GetMaterialSourceByID(ctx context.Context, id string) (*model.MaterialSource, error) {
	args := m.Called(ctx, id)
	var result *model.MaterialSource
	if v := args.Get(0); v != nil {
		result = v.(*model.MaterialSource)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateMaterialSource(ctx context.Context, ms *model.MaterialSource) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockDataSource) ListMaterialSources(ctx context.Context, p query.Params) (model.Page[model.MaterialSource], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.MaterialSource]), args.Error(1)
}

func (m *MockDataSource) CreateParameter(ctx context.Context, p *model.Parameter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDataSource) GetParameterByID(ctx context.Context, id string) (*model.Parameter, error) {
	args := m.Called(ctx, id)
	var result *model.Parameter
	if v := args.Get(0); v != nil {
		result = v.(*model.Parameter)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateParameter(ctx context.Context, p *model.Parameter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDataSource) ListParameters(ctx context.Context, p query.Params) (model.Page[model.Parameter], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Parameter]), args.Error(1)
}

func (m *MockDataSource) CreateSample(ctx context.Context, s *model.Sample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDataSource) GetSampleByID(ctx context.Context, id string) (*model.Sample, error) {
	args := m.Called(ctx, id)
	var result *model.Sample
	if v := args.Get(0); v != nil {
		result = v.(*model.Sample)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateSample(ctx context.Context, s *model.Sample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDataSource) ListSamples(ctx context.Context, p query.Params) (model.Page[model.Sample], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Sample]), args.Error(1)
}

func (m *MockDataSource) SamplesReceivedBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Sample, error) {
	args := m.Called(ctx, from, to)
	var result []model.Sample
	if v := args.Get(0); v != nil {
		result = v.([]model.Sample)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) CreateSpecification(ctx context.Context, s *model.Specification) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDataSource) GetSpecificationByID(ctx context.Context, id string) (*model.Specification, error) {
	args := m.Called(ctx, id)
	var result *model.Specification
	if v := args.Get(0); v != nil {
		result = v.(*model.Specification)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateSpecification(ctx context.Context, s *model.Specification) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDataSource) DeleteSpecification(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataSource) ListSpecifications(ctx context.Context, p query.Params) (model.Page[model.Specification], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Specification]), args.Error(1)
}

func (m *MockDataSource) FindSpecification(ctx context.Context, parameterID string, materialID string, materialSourceID string) (*model.Specification, error) {
	args := m.Called(ctx, parameterID, materialID, materialSourceID)
	var result *model.Specification
	if v := args.Get(0); v != nil {
		result = v.(*model.Specification)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) ReplaceTestResult(ctx context.Context, tr *model.TestResult) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockDataSource) GetTestResultByID(ctx context.Context, id string) (*model.TestResult, error) {
	args := m.Called(ctx, id)
	var result *model.TestResult
	if v := args.Get(0); v != nil {
		result = v.(*model.TestResult)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) ListTestResults(ctx context.Context, p query.Params) (model.Page[model.TestResult], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.TestResult]), args.Error(1)
}

func (m *MockDataSource) DeleteTestResult(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataSource) TestResultsCreatedBetween(ctx context.Context, from time.Time, to time.Time) ([]model.TestResultReportRow, error) {
	args := m.Called(ctx, from, to)
	var result []model.TestResultReportRow
	if v := args.Get(0); v != nil {
		result = v.([]model.TestResultReportRow)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) GetMeasurementByID(ctx context.Context, id string) (*model.Measurement, error) {
	args := m.Called(ctx, id)
	var result *model.Measurement
	if v := args.Get(0); v != nil {
		result = v.(*model.Measurement)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) ListMeasurements(ctx context.Context, p query.Params) (model.Page[model.Measurement], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Measurement]), args.Error(1)
}

func (m *MockDataSource) CreateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockDataSource) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	var result *model.User
	if v := args.Get(0); v != nil {
		result = v.(*model.User)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	var result *model.User
	if v := args.Get(0); v != nil {
		result = v.(*model.User)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockDataSource) ListUsers(ctx context.Context, p query.Params) (model.Page[model.User], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.User]), args.Error(1)
}

func (m *MockDataSource) SetUserRoles(ctx context.Context, userID string, roleIDs []string) error {
	args := m.Called(ctx, userID, roleIDs)
	return args.Error(0)
}

func (m *MockDataSource) SetUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	args := m.Called(ctx, userID, permissionIDs)
	return args.Error(0)
}

func (m *MockDataSource) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockDataSource) GetUserPermissionCodes(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var result []string
	if v := args.Get(0); v != nil {
		result = v.([]string)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) GetUserRoleCodes(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var result []string
	if v := args.Get(0); v != nil {
		result = v.([]string)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) CreateRole(ctx context.Context, r *model.Role) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDataSource) GetRoleByID(ctx context.Context, id string) (*model.Role, error) {
	args := m.Called(ctx, id)
	var result *model.Role
	if v := args.Get(0); v != nil {
		result = v.(*model.Role)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdateRole(ctx context.Context, r *model.Role) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDataSource) ListRoles(ctx context.Context, p query.Params) (model.Page[model.Role], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Role]), args.Error(1)
}

func (m *MockDataSource) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	args := m.Called(ctx, roleID, permissionIDs)
	return args.Error(0)
}

func (m *MockDataSource) GetUserIDsByRole(ctx context.Context, roleID string) ([]string, error) {
	args := m.Called(ctx, roleID)
	var result []string
	if v := args.Get(0); v != nil {
		result = v.([]string)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) CreatePermission(ctx context.Context, p *model.Permission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDataSource) GetPermissionByID(ctx context.Context, id string) (*model.Permission, error) {
	args := m.Called(ctx, id)
	var result *model.Permission
	if v := args.Get(0); v != nil {
		result = v.(*model.Permission)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) UpdatePermission(ctx context.Context, p *model.Permission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDataSource) ListPermissions(ctx context.Context, p query.Params) (model.Page[model.Permission], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Permission]), args.Error(1)
}

func (m *MockDataSource) CreateRefreshToken(ctx context.Context, rt *model.RefreshToken) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockDataSource) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	var result *model.RefreshToken
	if v := args.Get(0); v != nil {
		result = v.(*model.RefreshToken)
	}
	return result, args.Error(1)
}

func (m *MockDataSource) DeleteRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockDataSource) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
