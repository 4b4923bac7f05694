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
	"github.com/jerry-enebeli/soillab/internal/query"
)

// Table joins shared by the listings below. Aliases are fixed per table so
// the same relation requested by several specs is joined once.
var (
	joinMaterial               = query.Join{Table: "materials", Alias: "m", On: "m.id = s.material_id"}
	joinSampleMaterialSource   = query.Join{Table: "material_sources", Alias: "ms", On: "ms.id = s.material_source_id"}
	joinMaterialType           = query.Join{Table: "material_types", Alias: "mt", On: "mt.id = m.material_type_id"}
	joinTestResultParameter    = query.Join{Table: "parameters", Alias: "p", On: "p.id = tr.parameter_id"}
	joinSpecParameter          = query.Join{Table: "parameters", Alias: "p", On: "p.id = sp.parameter_id"}
	joinSpecMaterial           = query.Join{Table: "materials", Alias: "m", On: "m.id = sp.material_id"}
	joinSpecMaterialSource     = query.Join{Table: "material_sources", Alias: "ms", On: "ms.id = sp.material_source_id"}
	joinMeasurementTestResult  = query.Join{Table: "test_results", Alias: "tr", On: "tr.id = me.test_result_id"}
	sampleJoins                = []query.Join{joinMaterial, joinMaterialType, joinSampleMaterialSource}
	sampleMaterialTypeJoins    = []query.Join{joinMaterial, joinMaterialType}
	specificationJoins         = []query.Join{joinSpecParameter, joinSpecMaterial, joinSpecMaterialSource}
	materialListingJoins       = []query.Join{joinMaterialType}
	testResultListingJoins     = []query.Join{joinTestResultParameter}
	measurementTestResultJoins = []query.Join{joinMeasurementTestResult}
)

var auditColumns = []string{"created_at", "updated_at", "created_by", "updated_by"}

func qualify(alias string, columns ...string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func columns(alias string, names ...string) []string {
	return append(qualify(alias, names...), qualify(alias, auditColumns...)...)
}

func withRefs(base []string, refs ...string) []string {
	return append(base, refs...)
}

// listing bundles what a list endpoint needs to turn request params into a
// query.Spec.
type listing struct {
	statement query.Statement
	lookup    query.Statement
	ordering  query.OrderingConfig
	search    query.SearchConfig
	filters   []query.FilterField
	// hidden is the archived_at or deleted_at column hidden by default.
	hidden     string
	hiddenShow func(query.Params) bool
}

func showArchived(p query.Params) bool { return p.ShowArchived }
func showDeleted(p query.Params) bool  { return p.ShowDeleted }

// spec builds the filter, search, ordering and pagination of one request.
func (l listing) spec(p query.Params, extra ...query.Filter) (query.Spec, error) {
	pagination, err := p.Pagination()
	if err != nil {
		return query.Spec{}, err
	}

	filters, err := query.FiltersFromParams(p, l.filters...)
	if err != nil {
		return query.Spec{}, err
	}
	if l.hidden != "" {
		filters = append(filters, query.NotSet(l.hidden, l.hiddenShow(p)))
	}
	filters = append(filters, extra...)
	filter, err := query.NewFilter(filters...)
	if err != nil {
		return query.Spec{}, err
	}

	search, err := l.search.New(p.Search)
	if err != nil {
		return query.Spec{}, err
	}

	return query.Spec{
		Filter:     filter,
		Search:     search,
		Ordering:   l.ordering.New(p.Ordering),
		Pagination: pagination,
	}, nil
}

var materialTypeListing = listing{
	statement: query.Statement{From: "material_types mt", Columns: columns("mt", "id", "code", "name", "archived_at")},
	lookup:    query.Statement{From: "material_types mt", Columns: qualify("mt", "id", "code", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "name", Column: "mt.name"},
			{Name: "code", Column: "mt.code"},
			{Name: "createdAt", Column: "mt.created_at"},
		},
		Default: "name",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "name", Column: "mt.name", Op: query.SearchIContains},
		{Name: "code", Column: "mt.code", Op: query.SearchIStartsWith},
	}}),
	filters: []query.FilterField{
		{Name: "code", Column: "mt.code"},
	},
	hidden:     "mt.archived_at",
	hiddenShow: showArchived,
}

var materialListing = listing{
	statement: query.Statement{
		From: "materials m",
		Columns: withRefs(columns("m", "id", "material_type_id", "name", "archived_at"),
			`mt.id AS "material_type.id"`, `mt.code AS "material_type.code"`, `mt.name AS "material_type.name"`),
		Joins: materialListingJoins,
	},
	lookup: query.Statement{From: "materials m", Columns: qualify("m", "id", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "name", Column: "m.name"},
			{Name: "materialType", Column: "mt.name"},
			{Name: "createdAt", Column: "m.created_at"},
		},
		Joins:   materialListingJoins,
		Default: "name",
	}),
	search: query.MustSearch(query.SearchConfig{
		Fields: []query.SearchField{
			{Name: "name", Column: "m.name", Op: query.SearchIContains},
			{Name: "materialType", Column: "mt.name", Op: query.SearchIContains},
		},
		Joins: materialListingJoins,
	}),
	filters: []query.FilterField{
		{Name: "materialTypeId", Column: "m.material_type_id"},
		{Name: "materialTypeCode", Column: "mt.code", Joins: materialListingJoins},
	},
	hidden:     "m.archived_at",
	hiddenShow: showArchived,
}

var materialSourceListing = listing{
	statement: query.Statement{From: "material_sources ms", Columns: columns("ms", "id", "code", "name", "archived_at")},
	lookup:    query.Statement{From: "material_sources ms", Columns: qualify("ms", "id", "code", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "name", Column: "ms.name"},
			{Name: "code", Column: "ms.code"},
			{Name: "createdAt", Column: "ms.created_at"},
		},
		Default: "name",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "name", Column: "ms.name", Op: query.SearchIContains},
		{Name: "code", Column: "ms.code", Op: query.SearchIStartsWith},
	}}),
	filters: []query.FilterField{
		{Name: "code", Column: "ms.code"},
	},
	hidden:     "ms.archived_at",
	hiddenShow: showArchived,
}

var parameterListing = listing{
	statement: query.Statement{From: "parameters p", Columns: columns("p", "id", "code", "name", "units", "archived_at")},
	lookup:    query.Statement{From: "parameters p", Columns: qualify("p", "id", "code", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "name", Column: "p.name"},
			{Name: "code", Column: "p.code"},
			{Name: "createdAt", Column: "p.created_at"},
		},
		Default: "name",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "name", Column: "p.name", Op: query.SearchIContains},
		{Name: "code", Column: "p.code", Op: query.SearchIStartsWith},
	}}),
	filters: []query.FilterField{
		{Name: "code", Column: "p.code"},
	},
	hidden:     "p.archived_at",
	hiddenShow: showArchived,
}

var sampleRefColumns = []string{
	`m.id AS "material.id"`, `m.name AS "material.name"`,
	`mt.id AS "material_type.id"`, `mt.code AS "material_type.code"`, `mt.name AS "material_type.name"`,
	`ms.id AS "material_source.id"`, `ms.code AS "material_source.code"`, `ms.name AS "material_source.name"`,
}

var sampleListing = listing{
	statement: query.Statement{
		From: "samples s",
		Columns: withRefs(columns("s", "id", "material_id", "material_source_id", "temperature", "received_at", "note", "deleted_at"),
			sampleRefColumns...),
		Joins: sampleJoins,
	},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "receivedAt", Column: "s.received_at"},
			{Name: "createdAt", Column: "s.created_at"},
			{Name: "temperature", Column: "s.temperature"},
			{Name: "material", Column: "m.name"},
			{Name: "materialType", Column: "mt.name"},
			{Name: "materialSource", Column: "ms.name"},
		},
		Joins:   sampleJoins,
		Default: "-receivedAt",
	}),
	search: query.MustSearch(query.SearchConfig{
		Fields: []query.SearchField{
			{Name: "material", Column: "m.name", Op: query.SearchIContains},
			{Name: "materialType", Column: "mt.name", Op: query.SearchIContains},
			{Name: "materialSource", Column: "ms.name", Op: query.SearchIContains},
			{Name: "note", Column: "s.note", Op: query.SearchIContains},
		},
		Joins: sampleJoins,
	}),
	filters: []query.FilterField{
		{Name: "materialId", Column: "s.material_id"},
		{Name: "materialSourceId", Column: "s.material_source_id"},
		{Name: "materialSourceCode", Column: "ms.code", Joins: []query.Join{joinSampleMaterialSource}},
		{Name: "materialTypeId", Column: "m.material_type_id", Joins: []query.Join{joinMaterial}},
		{Name: "materialTypeCode", Column: "mt.code", Joins: sampleMaterialTypeJoins},
		{Name: "receivedAt", Column: "s.received_at", Kind: query.KindTime},
	},
	hidden:     "s.deleted_at",
	hiddenShow: showDeleted,
}

var specificationListing = listing{
	statement: query.Statement{
		From: "specifications sp",
		Columns: withRefs(columns("sp", "id", "parameter_id", "material_id", "material_source_id", "min_value", "max_value"),
			`p.id AS "parameter.id"`, `p.code AS "parameter.code"`, `p.name AS "parameter.name"`,
			`m.id AS "material.id"`, `m.name AS "material.name"`,
			`ms.id AS "material_source.id"`, `ms.code AS "material_source.code"`, `ms.name AS "material_source.name"`),
		Joins: specificationJoins,
	},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "parameter", Column: "p.name"},
			{Name: "material", Column: "m.name"},
			{Name: "materialSource", Column: "ms.name"},
			{Name: "createdAt", Column: "sp.created_at"},
		},
		Joins:   specificationJoins,
		Default: "parameter,material",
	}),
	search: query.MustSearch(query.SearchConfig{
		Fields: []query.SearchField{
			{Name: "parameter", Column: "p.name", Op: query.SearchIContains},
			{Name: "material", Column: "m.name", Op: query.SearchIContains},
			{Name: "materialSource", Column: "ms.name", Op: query.SearchIContains},
		},
		Joins: specificationJoins,
	}),
	filters: []query.FilterField{
		{Name: "parameterId", Column: "sp.parameter_id"},
		{Name: "materialId", Column: "sp.material_id"},
		{Name: "materialSourceId", Column: "sp.material_source_id"},
	},
}

var testResultListing = listing{
	statement: query.Statement{
		From: "test_results tr",
		Columns: withRefs(columns("tr", "id", "sample_id", "parameter_id", "mean_value", "variation_percentage",
			"lower_limit", "upper_limit", "is_compliant", "deleted_at"),
			`p.id AS "parameter.id"`, `p.code AS "parameter.code"`, `p.name AS "parameter.name"`, `p.units AS "parameter.units"`),
		Joins: testResultListingJoins,
	},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "createdAt", Column: "tr.created_at"},
			{Name: "parameter", Column: "p.name"},
			{Name: "meanValue", Column: "tr.mean_value"},
		},
		Joins:   testResultListingJoins,
		Default: "-createdAt",
	}),
	search: query.MustSearch(query.SearchConfig{
		Fields: []query.SearchField{
			{Name: "parameter", Column: "p.name", Op: query.SearchIContains},
			{Name: "parameterCode", Column: "p.code", Op: query.SearchIStartsWith},
		},
		Joins: testResultListingJoins,
	}),
	filters: []query.FilterField{
		{Name: "sampleId", Column: "tr.sample_id"},
		{Name: "parameterId", Column: "tr.parameter_id"},
		{Name: "parameterCode", Column: "p.code", Joins: testResultListingJoins},
		{Name: "isCompliant", Column: "tr.is_compliant", Kind: query.KindBool},
	},
	hidden:     "tr.deleted_at",
	hiddenShow: showDeleted,
}

var measurementListing = listing{
	statement: query.Statement{
		From:    "measurements me",
		Columns: columns("me", "id", "test_result_id", "value", "deleted_at"),
	},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "createdAt", Column: "me.created_at"},
			{Name: "value", Column: "me.value"},
		},
		Default: "createdAt",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "testResult", Column: "me.test_result_id", Op: query.SearchStartsWith},
	}}),
	filters: []query.FilterField{
		{Name: "testResultId", Column: "me.test_result_id"},
		{Name: "sampleId", Column: "tr.sample_id", Joins: measurementTestResultJoins},
		{Name: "value", Column: "me.value", Kind: query.KindNumber},
	},
	hidden:     "me.deleted_at",
	hiddenShow: showDeleted,
}

var userListing = listing{
	statement: query.Statement{
		From: "users u",
		Columns: columns("u", "id", "first_name", "last_name", "email", "is_active", "is_superuser",
			"last_login_at", "deleted_at"),
	},
	lookup: query.Statement{
		From:    "users u",
		Columns: []string{"u.id", "u.email AS code", "concat_ws(' ', u.first_name, u.last_name) AS name"},
	},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "createdAt", Column: "u.created_at"},
			{Name: "email", Column: "u.email"},
			{Name: "lastName", Column: "u.last_name"},
			{Name: "lastLoginAt", Column: "u.last_login_at"},
		},
		Default: "-createdAt",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "email", Column: "u.email", Op: query.SearchIContains},
		{Name: "firstName", Column: "u.first_name", Op: query.SearchIContains},
		{Name: "lastName", Column: "u.last_name", Op: query.SearchIContains},
	}}),
	filters: []query.FilterField{
		{Name: "email", Column: "u.email"},
		{Name: "isActive", Column: "u.is_active", Kind: query.KindBool},
		{Name: "isSuperuser", Column: "u.is_superuser", Kind: query.KindBool},
	},
	hidden:     "u.deleted_at",
	hiddenShow: showDeleted,
}

var roleListing = listing{
	statement: query.Statement{From: "roles r", Columns: columns("r", "id", "code", "name", "description", "archived_at")},
	lookup:    query.Statement{From: "roles r", Columns: qualify("r", "id", "code", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "name", Column: "r.name"},
			{Name: "code", Column: "r.code"},
			{Name: "createdAt", Column: "r.created_at"},
		},
		Default: "name",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "name", Column: "r.name", Op: query.SearchIContains},
		{Name: "code", Column: "r.code", Op: query.SearchIStartsWith},
	}}),
	filters: []query.FilterField{
		{Name: "code", Column: "r.code"},
	},
	hidden:     "r.archived_at",
	hiddenShow: showArchived,
}

var permissionListing = listing{
	statement: query.Statement{From: "permissions pe", Columns: columns("pe", "id", "code", "name", "description", "archived_at")},
	lookup:    query.Statement{From: "permissions pe", Columns: qualify("pe", "id", "code", "name")},
	ordering: query.MustOrdering(query.OrderingConfig{
		Fields: []query.OrderingField{
			{Name: "code", Column: "pe.code"},
			{Name: "name", Column: "pe.name"},
		},
		Default: "code",
	}),
	search: query.MustSearch(query.SearchConfig{Fields: []query.SearchField{
		{Name: "code", Column: "pe.code", Op: query.SearchIContains},
		{Name: "name", Column: "pe.name", Op: query.SearchIContains},
	}}),
	filters: []query.FilterField{
		{Name: "code", Column: "pe.code"},
	},
	hidden:     "pe.archived_at",
	hiddenShow: showArchived,
}
