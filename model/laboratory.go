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

package model

import "time"

type MaterialType struct {
	ID         string     `json:"id" db:"id"`
	Code       string     `json:"code" db:"code"`
	Name       string     `json:"name" db:"name"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	Audit
}

type Material struct {
	ID             string     `json:"id" db:"id"`
	MaterialTypeID string     `json:"materialTypeId" db:"material_type_id"`
	Name           string     `json:"name" db:"name"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	MaterialType   Ref        `json:"materialType" db:"material_type"`
	Audit
}

type MaterialSource struct {
	ID         string     `json:"id" db:"id"`
	Code       string     `json:"code" db:"code"`
	Name       string     `json:"name" db:"name"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	Audit
}

type Parameter struct {
	ID         string     `json:"id" db:"id"`
	Code       string     `json:"code" db:"code"`
	Name       string     `json:"name" db:"name"`
	Units      string     `json:"units" db:"units"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	Audit
}

// Sample is a physical specimen received by the laboratory. Material,
// MaterialType and MaterialSource are populated from joins on read.
type Sample struct {
	ID               string       `json:"id" db:"id"`
	MaterialID       string       `json:"materialId" db:"material_id"`
	MaterialSourceID string       `json:"materialSourceId" db:"material_source_id"`
	Temperature      float64      `json:"temperature" db:"temperature"`
	ReceivedAt       time.Time    `json:"receivedAt" db:"received_at"`
	Note             *string      `json:"note" db:"note"`
	DeletedAt        *time.Time   `json:"deletedAt,omitempty" db:"deleted_at"`
	Material         Ref          `json:"material" db:"material"`
	MaterialType     Ref          `json:"materialType" db:"material_type"`
	MaterialSource   Ref          `json:"materialSource" db:"material_source"`
	TestResults      []TestResult `json:"testResults" db:"-"`
	Audit
}

// Specification holds the acceptable bounds of a parameter for a material
// coming from a given source. A nil bound is unbounded on that side.
type Specification struct {
	ID               string   `json:"id" db:"id"`
	ParameterID      string   `json:"parameterId" db:"parameter_id"`
	MaterialID       string   `json:"materialId" db:"material_id"`
	MaterialSourceID string   `json:"materialSourceId" db:"material_source_id"`
	MinValue         *float64 `json:"minValue" db:"min_value"`
	MaxValue         *float64 `json:"maxValue" db:"max_value"`
	Parameter        Ref      `json:"parameter" db:"parameter"`
	Material         Ref      `json:"material" db:"material"`
	MaterialSource   Ref      `json:"materialSource" db:"material_source"`
	Audit
}

// ReportRange bounds the received or created time of report rows to
// [From, To). An open side is unbounded; a fully open range covers today
// in UTC.
type ReportRange struct {
	From *time.Time
	To   *time.Time
}

// Bounds resolves the range against now.
func (r ReportRange) Bounds(now time.Time) (from, to time.Time) {
	if r.From == nil && r.To == nil {
		y, m, d := now.UTC().Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 0, 1)
	}
	from = time.Unix(0, 0).UTC()
	to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	return from, to
}
