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
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
)

var (
	sampleColumns = []string{
		"id", "material_id", "material_source_id", "temperature", "received_at", "note", "deleted_at",
		"created_at", "updated_at", "created_by", "updated_by",
		"material.id", "material.name", "material_type.id", "material_type.code", "material_type.name",
		"material_source.id", "material_source.code", "material_source.name",
	}
	testResultColumns = []string{
		"id", "sample_id", "parameter_id", "mean_value", "variation_percentage", "lower_limit", "upper_limit",
		"is_compliant", "deleted_at", "created_at", "updated_at", "created_by", "updated_by",
		"parameter.id", "parameter.code", "parameter.name", "parameter.units",
	}
	measurementColumns = []string{"id", "test_result_id", "value", "deleted_at", "created_at", "updated_at", "created_by", "updated_by"}
)

func sampleRow(rows *sqlmock.Rows, id string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "mat_1", "msr_1", 20.0, at, nil, nil, at, at, nil, nil,
		"mat_1", "№13 (наповнювальна)", "mtt_1", "molding_sand", "Molding sand",
		"msr_1", "sand_mixer", "Sand mixer")
}

func TestCreateSample_DefaultsReceivedAt(t *testing.T) {
	ds, mock := newTestDatasource(t)
	s := &model.Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1", Temperature: 18, Note: ptr.String("batch 7")}

	mock.ExpectExec("INSERT INTO samples").
		WithArgs(sqlmock.AnyArg(), "mat_1", "msr_1", 18.0, sqlmock.AnyArg(), "batch 7",
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, ds.CreateSample(context.Background(), s))
	assert.True(t, strings.HasPrefix(s.ID, "smp_"))
	assert.Equal(t, s.CreatedAt, s.ReceivedAt)
}

func TestGetSampleByID_LoadsResultsAndMeasurements(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM samples s JOIN materials m ON m.id = s.material_id JOIN material_types mt ON mt.id = m.material_type_id JOIN material_sources ms ON ms.id = s.material_source_id WHERE s.id = $1 LIMIT 1")).
		WithArgs("smp_1").
		WillReturnRows(sampleRow(sqlmock.NewRows(sampleColumns), "smp_1", now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM test_results tr JOIN parameters p ON p.id = tr.parameter_id WHERE (tr.sample_id IN ($1) AND tr.deleted_at IS NULL) ORDER BY tr.created_at, tr.id")).
		WithArgs("smp_1").
		WillReturnRows(sqlmock.NewRows(testResultColumns).
			AddRow("tst_1", "smp_1", "par_1", 2.8, 0.0, 2.6, 3.1, true, nil, now, now, nil, nil, "par_1", "moisture", "Moisture", "%"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM measurements me WHERE (me.test_result_id IN ($1) AND me.deleted_at IS NULL) ORDER BY me.created_at, me.id")).
		WithArgs("tst_1").
		WillReturnRows(sqlmock.NewRows(measurementColumns).
			AddRow("msm_1", "tst_1", 2.8, nil, now, now, nil, nil))

	s, err := ds.GetSampleByID(context.Background(), "smp_1")
	require.NoError(t, err)
	assert.Equal(t, "molding_sand", s.MaterialType.Code)
	assert.Equal(t, "sand_mixer", s.MaterialSource.Code)
	require.Len(t, s.TestResults, 1)
	assert.Equal(t, "moisture", s.TestResults[0].Parameter.Code)
	require.Len(t, s.TestResults[0].Measurements, 1)
	assert.Equal(t, 2.8, s.TestResults[0].Measurements[0].Value)
}

func TestListSamples_DefaultOrderingAndEagerLoad(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM samples s WHERE ((s.deleted_at IS NULL))")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows(sampleColumns)
	sampleRow(rows, "smp_2", now)
	sampleRow(rows, "smp_1", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ((s.deleted_at IS NULL)) ORDER BY s.received_at DESC LIMIT 10 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (tr.sample_id IN ($1,$2) AND tr.deleted_at IS NULL)")).
		WithArgs("smp_2", "smp_1").
		WillReturnRows(sqlmock.NewRows(testResultColumns))

	page, err := ds.ListSamples(context.Background(), params(t, ""))
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "smp_2", page.Data[0].ID)
	assert.NotNil(t, page.Data[0].TestResults)
	assert.Empty(t, page.Data[1].TestResults)
}

func TestListSamples_FilterByMaterialTypeCodeWithIn(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM samples s JOIN materials m ON m.id = s.material_id JOIN material_types mt ON mt.id = m.material_type_id WHERE ((mt.code IN ($1,$2)) AND (s.deleted_at IS NULL))")).
		WithArgs("molding_sand", "binder").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := ds.ListSamples(context.Background(), params(t, "filter[materialTypeCode][in]=molding_sand,binder,molding_sand"))
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalItems)
}

func TestSamplesReceivedBetween(t *testing.T) {
	ds, mock := newTestDatasource(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (s.received_at >= $1 AND s.received_at < $2 AND s.deleted_at IS NULL) ORDER BY s.received_at, s.id")).
		WithArgs(from, to).
		WillReturnRows(sampleRow(sqlmock.NewRows(sampleColumns), "smp_1", from.Add(time.Hour)))
	mock.ExpectQuery("FROM test_results tr").
		WithArgs("smp_1").
		WillReturnRows(sqlmock.NewRows(testResultColumns))

	samples, err := ds.SamplesReceivedBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "smp_1", samples[0].ID)
}

func TestFindSpecification(t *testing.T) {
	ds, mock := newTestDatasource(t)
	now := time.Now().UTC()
	columns := []string{"id", "parameter_id", "material_id", "material_source_id", "min_value", "max_value",
		"created_at", "updated_at", "created_by", "updated_by"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE sp.material_id = $1 AND sp.material_source_id = $2 AND sp.parameter_id = $3 LIMIT 1")).
		WithArgs("mat_1", "msr_1", "par_1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("spc_1", "par_1", "mat_1", "msr_1", 2.5, nil, now, now, nil, nil))

	spec, err := ds.FindSpecification(context.Background(), "par_1", "mat_1", "msr_1")
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, 2.5, *spec.MinValue)
	assert.Nil(t, spec.MaxValue)
}

func TestFindSpecification_NoRow(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery("FROM specifications sp").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	spec, err := ds.FindSpecification(context.Background(), "par_1", "mat_1", "msr_1")
	assert.NoError(t, err)
	assert.Nil(t, spec)
}

func TestDeleteSpecification_NotFound(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM specifications WHERE id = $1")).
		WithArgs("spc_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Error(t, ds.DeleteSpecification(context.Background(), "spc_missing"))
}
