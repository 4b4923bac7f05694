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
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

const testResultEntity = "test result"

// ReplaceTestResult removes any previous result of the (sample, parameter)
// pair and stores tr with its measurements, all in one transaction. The
// measurements of the removed result go with it through the cascade.
func (d Datasource) ReplaceTestResult(ctx context.Context, tr *model.TestResult) error {
	ctx, span := tracer.Start(ctx, "Replacing test result")
	defer span.End()

	actor := auth.ActorID(ctx)
	tr.ID = model.GenerateUUIDWithSuffix("tst")
	tr.Stamp(actor)
	for i := range tr.Measurements {
		m := &tr.Measurements[i]
		m.ID = model.GenerateUUIDWithSuffix("msm")
		m.TestResultID = tr.ID
		m.Audit = tr.Audit
		// Keeps the entry order when reading back by created_at.
		m.CreatedAt = tr.CreatedAt.Add(time.Duration(i) * time.Microsecond)
	}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, query.Psql.Delete("test_results").Where(sq.Eq{
			"sample_id":    tr.SampleID,
			"parameter_id": tr.ParameterID,
		})); err != nil {
			return err
		}

		if _, err := exec(ctx, tx, query.Psql.Insert("test_results").
			Columns("id", "sample_id", "parameter_id", "mean_value", "variation_percentage", "lower_limit",
				"upper_limit", "is_compliant", "created_at", "updated_at", "created_by", "updated_by").
			Values(tr.ID, tr.SampleID, tr.ParameterID, tr.MeanValue, tr.VariationPercentage, tr.LowerLimit,
				tr.UpperLimit, tr.IsCompliant, tr.CreatedAt, tr.UpdatedAt, tr.CreatedBy, tr.UpdatedBy)); err != nil {
			return err
		}

		if len(tr.Measurements) == 0 {
			return nil
		}
		b := query.Psql.Insert("measurements").
			Columns("id", "test_result_id", "value", "created_at", "updated_at", "created_by", "updated_by")
		for _, m := range tr.Measurements {
			b = b.Values(m.ID, m.TestResultID, m.Value, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy)
		}
		_, err := exec(ctx, tx, b)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return mapError(err, testResultEntity)
	}
	return nil
}

// GetTestResultByID retrieves a test result with its live measurements.
func (d Datasource) GetTestResultByID(ctx context.Context, id string) (*model.TestResult, error) {
	tr, err := get[model.TestResult](ctx, d, testResultListing, testResultEntity, sq.Eq{"tr.id": id})
	if err != nil {
		return nil, err
	}
	results := []model.TestResult{*tr}
	if err := d.loadMeasurements(ctx, results); err != nil {
		return nil, mapError(err, testResultEntity)
	}
	return &results[0], nil
}

func (d Datasource) ListTestResults(ctx context.Context, p query.Params) (model.Page[model.TestResult], error) {
	return list[model.TestResult](ctx, d, testResultListing, testResultEntity, p, d.loadMeasurements)
}

// DeleteTestResult hard deletes a result and, through the cascade, its measurements.
func (d Datasource) DeleteTestResult(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Deleting test result")
	defer span.End()

	res, err := exec(ctx, d.Conn, query.Psql.Delete("test_results").Where(sq.Eq{"id": id}))
	if err != nil {
		return mapError(err, testResultEntity)
	}
	return expectAffected(res, testResultEntity)
}

// TestResultsCreatedBetween returns the flattened live results created in
// [from, to) for the report export.
func (d Datasource) TestResultsCreatedBetween(ctx context.Context, from, to time.Time) ([]model.TestResultReportRow, error) {
	ctx, span := tracer.Start(ctx, "Fetching test results for report")
	defer span.End()

	stmt, args, err := query.Psql.Select(
		"tr.id AS test_result_id", "s.id AS sample_id", "s.received_at", "s.temperature",
		"mt.name AS material_type", "m.name AS material", "ms.name AS material_source",
		"p.name AS parameter", "p.units", "tr.mean_value", "tr.variation_percentage",
		"tr.lower_limit", "tr.upper_limit", "tr.is_compliant", "tr.created_at",
	).
		From("test_results tr").
		Join("samples s ON s.id = tr.sample_id").
		Join("materials m ON m.id = s.material_id").
		Join("material_types mt ON mt.id = m.material_type_id").
		Join("material_sources ms ON ms.id = s.material_source_id").
		Join("parameters p ON p.id = tr.parameter_id").
		Where(sq.And{
			sq.GtOrEq{"tr.created_at": from},
			sq.Lt{"tr.created_at": to},
			sq.Eq{"tr.deleted_at": nil},
			sq.Eq{"s.deleted_at": nil},
		}).
		OrderBy("s.received_at", "s.id", "p.name").
		ToSql()
	if err != nil {
		return nil, mapError(err, testResultEntity)
	}

	var rows []model.TestResultReportRow
	if err := sqlscan.Select(ctx, d.Conn, &rows, stmt, args...); err != nil {
		span.RecordError(err)
		return nil, mapError(err, testResultEntity)
	}
	return rows, nil
}

// loadMeasurements attaches the live measurements of every result in one query.
func (d Datasource) loadMeasurements(ctx context.Context, results []model.TestResult) error {
	if len(results) == 0 {
		return nil
	}
	ids := make([]string, len(results))
	index := make(map[string]int, len(results))
	for i, tr := range results {
		ids[i] = tr.ID
		index[tr.ID] = i
		results[i].Measurements = []model.Measurement{}
	}

	measurements, err := selectAll[model.Measurement](ctx, d.Conn, measurementListing.statement, sq.And{
		sq.Eq{"me.test_result_id": ids},
		sq.Eq{"me.deleted_at": nil},
	}, "me.created_at", "me.id")
	if err != nil {
		return err
	}
	for _, m := range measurements {
		i := index[m.TestResultID]
		results[i].Measurements = append(results[i].Measurements, m)
	}
	return nil
}

func (d Datasource) GetMeasurementByID(ctx context.Context, id string) (*model.Measurement, error) {
	return get[model.Measurement](ctx, d, measurementListing, Measurements.Entity, sq.Eq{"me.id": id})
}

func (d Datasource) ListMeasurements(ctx context.Context, p query.Params) (model.Page[model.Measurement], error) {
	return list[model.Measurement](ctx, d, measurementListing, Measurements.Entity, p)
}
