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

	sq "github.com/Masterminds/squirrel"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
)

// CreateSample inserts a new sample. Material and source must exist.
func (d Datasource) CreateSample(ctx context.Context, s *model.Sample) error {
	ctx, span := tracer.Start(ctx, "Saving sample to db")
	defer span.End()

	s.ID = model.GenerateUUIDWithSuffix("smp")
	s.Stamp(auth.ActorID(ctx))
	if s.ReceivedAt.IsZero() {
		s.ReceivedAt = s.CreatedAt
	}
	return insert(ctx, d.Conn, Samples.Entity, query.Psql.Insert("samples").
		Columns("id", "material_id", "material_source_id", "temperature", "received_at", "note",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(s.ID, s.MaterialID, s.MaterialSourceID, s.Temperature, s.ReceivedAt, s.Note,
			s.CreatedAt, s.UpdatedAt, s.CreatedBy, s.UpdatedBy))
}

// GetSampleByID retrieves a sample with its refs and live test results.
func (d Datasource) GetSampleByID(ctx context.Context, id string) (*model.Sample, error) {
	s, err := get[model.Sample](ctx, d, sampleListing, Samples.Entity, sq.Eq{"s.id": id})
	if err != nil {
		return nil, err
	}
	samples := []model.Sample{*s}
	if err := d.loadSampleTestResults(ctx, samples); err != nil {
		return nil, mapError(err, Samples.Entity)
	}
	return &samples[0], nil
}

func (d Datasource) UpdateSample(ctx context.Context, s *model.Sample) error {
	ctx, span := tracer.Start(ctx, "Updating sample")
	defer span.End()

	s.Touch(auth.ActorID(ctx))
	return update(ctx, d.Conn, Samples.Entity, query.Psql.Update("samples").
		Set("material_id", s.MaterialID).
		Set("material_source_id", s.MaterialSourceID).
		Set("temperature", s.Temperature).
		Set("received_at", s.ReceivedAt).
		Set("note", s.Note).
		Set("updated_at", s.UpdatedAt).
		Set("updated_by", s.UpdatedBy).
		Where(sq.Eq{"id": s.ID}))
}

func (d Datasource) ListSamples(ctx context.Context, p query.Params) (model.Page[model.Sample], error) {
	return list[model.Sample](ctx, d, sampleListing, Samples.Entity, p, d.loadSampleTestResults)
}

// SamplesReceivedBetween returns the live samples received in [from, to).
func (d Datasource) SamplesReceivedBetween(ctx context.Context, from, to time.Time) ([]model.Sample, error) {
	ctx, span := tracer.Start(ctx, "Fetching samples for report")
	defer span.End()

	samples, err := selectAll[model.Sample](ctx, d.Conn, sampleListing.statement, sq.And{
		sq.GtOrEq{"s.received_at": from},
		sq.Lt{"s.received_at": to},
		sq.Eq{"s.deleted_at": nil},
	}, "s.received_at", "s.id")
	if err != nil {
		span.RecordError(err)
		return nil, mapError(err, Samples.Entity)
	}
	if err := d.loadSampleTestResults(ctx, samples); err != nil {
		return nil, mapError(err, Samples.Entity)
	}
	return samples, nil
}

// loadSampleTestResults attaches the live test results, with measurements,
// of every sample in one query.
func (d Datasource) loadSampleTestResults(ctx context.Context, samples []model.Sample) error {
	if len(samples) == 0 {
		return nil
	}
	ids := make([]string, len(samples))
	index := make(map[string]int, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
		index[s.ID] = i
		samples[i].TestResults = []model.TestResult{}
	}

	results, err := selectAll[model.TestResult](ctx, d.Conn, testResultListing.statement, sq.And{
		sq.Eq{"tr.sample_id": ids},
		sq.Eq{"tr.deleted_at": nil},
	}, "tr.created_at", "tr.id")
	if err != nil {
		return err
	}
	if err := d.loadMeasurements(ctx, results); err != nil {
		return err
	}
	for _, tr := range results {
		i := index[tr.SampleID]
		samples[i].TestResults = append(samples[i].TestResults, tr)
	}
	return nil
}
