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

// TestResult is the outcome of testing one parameter of one sample. A sample
// holds at most one result per parameter; creating another replaces it.
type TestResult struct {
	ID                  string        `json:"id" db:"id"`
	SampleID            string        `json:"sampleId" db:"sample_id"`
	ParameterID         string        `json:"parameterId" db:"parameter_id"`
	MeanValue           *float64      `json:"meanValue" db:"mean_value"`
	VariationPercentage *float64      `json:"variationPercentage" db:"variation_percentage"`
	LowerLimit          *float64      `json:"lowerLimit" db:"lower_limit"`
	UpperLimit          *float64      `json:"upperLimit" db:"upper_limit"`
	IsCompliant         bool          `json:"isCompliant" db:"is_compliant"`
	DeletedAt           *time.Time    `json:"deletedAt,omitempty" db:"deleted_at"`
	Parameter           ParameterRef  `json:"parameter" db:"parameter"`
	Measurements        []Measurement `json:"measurements" db:"-"`
	Audit
}

type ParameterRef struct {
	ID    string `json:"id" db:"id"`
	Code  string `json:"code" db:"code"`
	Name  string `json:"name" db:"name"`
	Units string `json:"units" db:"units"`
}

type Measurement struct {
	ID           string     `json:"id" db:"id"`
	TestResultID string     `json:"testResultId" db:"test_result_id"`
	Value        float64    `json:"value" db:"value"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	Audit
}

// TestResultCreate is a validated request to record a test result.
// Context carries strategy specific inputs such as "is_visual_test_compliant"
// or sieve percentages.
type TestResultCreate struct {
	SampleID     string
	ParameterID  string
	Measurements []float64
	Context      map[string]any
}

// TestResultReportRow is one flattened line of the test result report.
type TestResultReportRow struct {
	TestResultID        string    `db:"test_result_id"`
	SampleID            string    `db:"sample_id"`
	ReceivedAt          time.Time `db:"received_at"`
	Temperature         float64   `db:"temperature"`
	MaterialType        string    `db:"material_type"`
	Material            string    `db:"material"`
	MaterialSource      string    `db:"material_source"`
	Parameter           string    `db:"parameter"`
	Units               string    `db:"units"`
	MeanValue           *float64  `db:"mean_value"`
	VariationPercentage *float64  `db:"variation_percentage"`
	LowerLimit          *float64  `db:"lower_limit"`
	UpperLimit          *float64  `db:"upper_limit"`
	IsCompliant         bool      `db:"is_compliant"`
	CreatedAt           time.Time `db:"created_at"`
}
