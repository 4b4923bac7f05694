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
	"time"

	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	lifecycle      // Archive, soft delete, restore and lookups shared by every table
	materialType   // Interface for material type operations
	material       // Interface for material operations
	materialSource // Interface for material source operations
	parameter      // Interface for parameter operations
	sample         // Interface for sample operations
	specification  // Interface for specification operations
	testResult     // Interface for test result operations
	measurement    // Interface for measurement operations
	user           // Interface for user operations
	role           // Interface for role operations
	permission     // Interface for permission operations
	refreshToken   // Interface for refresh token operations
}

// lifecycle defines the operations every table supports through its Table descriptor.
type lifecycle interface {
	SetLifecycle(ctx context.Context, t Table, id string, set bool) error                  // Archives or soft deletes (set) or restores a row
	Lookup(ctx context.Context, t Table, p query.Params) (model.Page[model.Lookup], error) // Paginated id/code/name listing
	MissingIDs(ctx context.Context, t Table, ids []string) ([]string, error)               // Returns the ids that do not exist in the table
}

type materialType interface {
	CreateMaterialType(ctx context.Context, mt *model.MaterialType) error
	GetMaterialTypeByID(ctx context.Context, id string) (*model.MaterialType, error)
	UpdateMaterialType(ctx context.Context, mt *model.MaterialType) error
	ListMaterialTypes(ctx context.Context, p query.Params) (model.Page[model.MaterialType], error)
}

type material interface {
	CreateMaterial(ctx context.Context, m *model.Material) error
	GetMaterialByID(ctx context.Context, id string) (*model.Material, error)
	UpdateMaterial(ctx context.Context, m *model.Material) error
	ListMaterials(ctx context.Context, p query.Params) (model.Page[model.Material], error)
}

type materialSource interface {
	CreateMaterialSource(ctx context.Context, ms *model.MaterialSource) error
	GetMaterialSourceByID(ctx context.Context, id string) (*model.MaterialSource, error)
	UpdateMaterialSource(ctx context.Context, ms *model.MaterialSource) error
	ListMaterialSources(ctx context.Context, p query.Params) (model.Page[model.MaterialSource], error)
}

type parameter interface {
	CreateParameter(ctx context.Context, p *model.Parameter) error
	GetParameterByID(ctx context.Context, id string) (*model.Parameter, error)
	UpdateParameter(ctx context.Context, p *model.Parameter) error
	ListParameters(ctx context.Context, p query.Params) (model.Page[model.Parameter], error)
}

// sample defines methods for handling samples.
type sample interface {
	CreateSample(ctx context.Context, s *model.Sample) error                                // Inserts a sample
	GetSampleByID(ctx context.Context, id string) (*model.Sample, error)                    // Retrieves a sample with its refs and test results
	UpdateSample(ctx context.Context, s *model.Sample) error                                // Updates a sample
	ListSamples(ctx context.Context, p query.Params) (model.Page[model.Sample], error)      // Paginated samples with test results
	SamplesReceivedBetween(ctx context.Context, from, to time.Time) ([]model.Sample, error) // Samples of the report window
}

// specification defines methods for handling specification rows.
type specification interface {
	CreateSpecification(ctx context.Context, s *model.Specification) error
	GetSpecificationByID(ctx context.Context, id string) (*model.Specification, error)
	UpdateSpecification(ctx context.Context, s *model.Specification) error
	DeleteSpecification(ctx context.Context, id string) error
	ListSpecifications(ctx context.Context, p query.Params) (model.Page[model.Specification], error)
	FindSpecification(ctx context.Context, parameterID, materialID, materialSourceID string) (*model.Specification, error) // Returns nil when no row matches
}

// testResult defines methods for handling test results.
type testResult interface {
	ReplaceTestResult(ctx context.Context, tr *model.TestResult) error                                      // Deletes any prior result of the pair and inserts tr with its measurements
	GetTestResultByID(ctx context.Context, id string) (*model.TestResult, error)                            // Retrieves a result with its measurements
	ListTestResults(ctx context.Context, p query.Params) (model.Page[model.TestResult], error)              // Paginated results with measurements
	DeleteTestResult(ctx context.Context, id string) error                                                  // Hard deletes a result
	TestResultsCreatedBetween(ctx context.Context, from, to time.Time) ([]model.TestResultReportRow, error) // Rows of the report window
}

type measurement interface {
	GetMeasurementByID(ctx context.Context, id string) (*model.Measurement, error)
	ListMeasurements(ctx context.Context, p query.Params) (model.Page[model.Measurement], error)
}

// user defines methods for handling users and their grants.
type user interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)       // Retrieves a user with roles and direct permissions
	GetUserByEmail(ctx context.Context, email string) (*model.User, error) // Retrieves a user for login
	UpdateUser(ctx context.Context, u *model.User) error
	ListUsers(ctx context.Context, p query.Params) (model.Page[model.User], error)
	SetUserRoles(ctx context.Context, userID string, roleIDs []string) error             // Replaces the user's roles
	SetUserPermissions(ctx context.Context, userID string, permissionIDs []string) error // Replaces the user's direct permissions
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	GetUserPermissionCodes(ctx context.Context, userID string) ([]string, error) // Direct and role permissions, archived ones excluded
	GetUserRoleCodes(ctx context.Context, userID string) ([]string, error)
}

type role interface {
	CreateRole(ctx context.Context, r *model.Role) error
	GetRoleByID(ctx context.Context, id string) (*model.Role, error) // Retrieves a role with its permissions
	UpdateRole(ctx context.Context, r *model.Role) error
	ListRoles(ctx context.Context, p query.Params) (model.Page[model.Role], error)
	SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	GetUserIDsByRole(ctx context.Context, roleID string) ([]string, error)
}

type permission interface {
	CreatePermission(ctx context.Context, p *model.Permission) error
	GetPermissionByID(ctx context.Context, id string) (*model.Permission, error)
	UpdatePermission(ctx context.Context, p *model.Permission) error
	ListPermissions(ctx context.Context, p query.Params) (model.Page[model.Permission], error)
}

type refreshToken interface {
	CreateRefreshToken(ctx context.Context, rt *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID string) error
}

// Table describes a table for the operations shared through lifecycle.
type Table struct {
	Name      string
	Alias     string
	Entity    string
	Lifecycle string
	listing   *listing
}

var (
	MaterialTypes   = Table{Name: "material_types", Alias: "mt", Entity: "material type", Lifecycle: "archived_at", listing: &materialTypeListing}
	Materials       = Table{Name: "materials", Alias: "m", Entity: "material", Lifecycle: "archived_at", listing: &materialListing}
	MaterialSources = Table{Name: "material_sources", Alias: "ms", Entity: "material source", Lifecycle: "archived_at", listing: &materialSourceListing}
	Parameters      = Table{Name: "parameters", Alias: "p", Entity: "parameter", Lifecycle: "archived_at", listing: &parameterListing}
	Samples         = Table{Name: "samples", Alias: "s", Entity: "sample", Lifecycle: "deleted_at", listing: &sampleListing}
	Measurements    = Table{Name: "measurements", Alias: "me", Entity: "measurement", Lifecycle: "deleted_at", listing: &measurementListing}
	Users           = Table{Name: "users", Alias: "u", Entity: "user", Lifecycle: "deleted_at", listing: &userListing}
	Roles           = Table{Name: "roles", Alias: "r", Entity: "role", Lifecycle: "archived_at", listing: &roleListing}
	Permissions     = Table{Name: "permissions", Alias: "pe", Entity: "permission", Lifecycle: "archived_at", listing: &permissionListing}
)
