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

import (
	"encoding/json"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
)

// invalidFields returns the names of the fields rejected by err.
func invalidFields(t *testing.T, err error) []string {
	t.Helper()
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	return fields
}

func TestMaterialType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      MaterialType
		invalid []string
	}{
		{name: "valid", in: MaterialType{Code: "molding_sand", Name: "Molding sand"}},
		{name: "digits", in: MaterialType{Code: "sand_13", Name: "Sand 13"}},
		{name: "upper case code", in: MaterialType{Code: "Molding_Sand", Name: "x"}, invalid: []string{"code"}},
		{name: "dangling underscore", in: MaterialType{Code: "molding_", Name: "x"}, invalid: []string{"code"}},
		{name: "empty", in: MaterialType{}, invalid: []string{"code", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.invalid == nil {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.invalid, invalidFields(t, err))
		})
	}
}

func TestSample_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Sample
		invalid []string
	}{
		{name: "valid", in: Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1", Temperature: ptr.Float64(20)}},
		{name: "zero temperature", in: Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1", Temperature: ptr.Float64(0)}},
		{name: "missing temperature", in: Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1"}, invalid: []string{"temperature"}},
		{name: "too cold", in: Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1", Temperature: ptr.Float64(-61)}, invalid: []string{"temperature"}},
		{name: "missing references", in: Sample{Temperature: ptr.Float64(20)}, invalid: []string{"materialId", "materialSourceId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.invalid == nil {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.invalid, invalidFields(t, err))
		})
	}
}

func TestSample_ToSample(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)
	received := time.Date(2025, 3, 2, 10, 0, 0, 0, kyiv)
	s := Sample{MaterialID: "mat_1", MaterialSourceID: "msr_1", Temperature: ptr.Float64(18.5), ReceivedAt: &received}

	sample := s.ToSample("smp_1")
	assert.Equal(t, "smp_1", sample.ID)
	assert.Equal(t, 18.5, sample.Temperature)
	assert.Equal(t, time.UTC, sample.ReceivedAt.Location())
	assert.True(t, received.Equal(sample.ReceivedAt))

	s.ReceivedAt = nil
	assert.True(t, s.ToSample("smp_2").ReceivedAt.IsZero())
}

func TestTestResult_ToTestResultCreate(t *testing.T) {
	tests := []struct {
		name    string
		context string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", context: ""},
		{name: "blank", context: "  "},
		{name: "object", context: `{"is_visual_test_compliant": true}`, want: map[string]any{"is_visual_test_compliant": true}},
		{name: "numbers stay exact", context: `{"sieve_0_4_mm_percent": 2.50}`, want: map[string]any{"sieve_0_4_mm_percent": json.Number("2.50")}},
		{name: "array", context: `[1, 2]`, wantErr: true},
		{name: "null", context: `null`, wantErr: true},
		{name: "malformed", context: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TestResult{SampleID: "smp_1", ParameterID: "par_1", Measurements: []float64{1, 2}, Context: tt.context}

			got, err := req.ToTestResultCreate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, invalidFields(t, req.Validate()), "context")
				return
			}
			require.NoError(t, err)
			assert.NoError(t, req.Validate())
			assert.Equal(t, tt.want, got.Context)
			assert.Equal(t, []float64{1, 2}, got.Measurements)
		})
	}
}

func TestTestResult_TooManyMeasurements(t *testing.T) {
	req := TestResult{SampleID: "smp_1", ParameterID: "par_1", Measurements: make([]float64, maxMeasurements+1)}
	assert.Contains(t, invalidFields(t, req.Validate()), "measurements")
}

func TestReport_Validate(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	assert.NoError(t, (&Report{}).Validate())
	assert.NoError(t, (&Report{DateFrom: &from}).Validate())
	assert.NoError(t, (&Report{DateFrom: &from, DateTo: &to}).Validate())
	assert.Error(t, (&Report{DateFrom: &to, DateTo: &from}).Validate())
	assert.Error(t, (&Report{DateFrom: &from, DateTo: &from}).Validate())

	r := Report{DateFrom: &from}.ToReportRange()
	assert.Equal(t, &from, r.From)
	assert.Nil(t, r.To)
}

func TestUser_Validate(t *testing.T) {
	valid := User{Email: "tech@soillab.local", Password: "long-enough"}
	assert.NoError(t, valid.ValidateCreate())

	noPassword := User{Email: "tech@soillab.local"}
	assert.ElementsMatch(t, []string{"password"}, invalidFields(t, noPassword.ValidateCreate()))
	assert.NoError(t, noPassword.ValidateUpdate(), "update keeps the current password")

	short := User{Email: "tech@soillab.local", Password: "short"}
	assert.ElementsMatch(t, []string{"password"}, invalidFields(t, short.ValidateUpdate()))

	badEmail := User{Email: "not-an-email", Password: "long-enough"}
	assert.ElementsMatch(t, []string{"email"}, invalidFields(t, badEmail.ValidateCreate()))
}

func TestUser_ToUserInput(t *testing.T) {
	assert.True(t, User{}.ToUserInput().IsActive)
	assert.False(t, User{IsActive: ptr.Bool(false)}.ToUserInput().IsActive)
}

func TestPermission_Validate(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{code: "samples.read", valid: true},
		{code: "test_results.*", valid: true},
		{code: "*.read", valid: true},
		{code: "*.*", valid: true},
		{code: "samples", valid: false},
		{code: "samples:read", valid: false},
		{code: "Samples.read", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := Permission{Code: tt.code, Name: "permission"}
			if tt.valid {
				assert.NoError(t, p.Validate())
				return
			}
			assert.Error(t, p.Validate())
		})
	}
}

func TestIDs_Validate(t *testing.T) {
	assert.NoError(t, (&IDs{IDs: []string{}}).Validate(), "an empty list clears assignments")
	assert.Error(t, (&IDs{}).Validate())
	assert.Error(t, (&IDs{IDs: []string{"rol_1", ""}}).Validate())
}
