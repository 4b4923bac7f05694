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

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, content []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestSampleJournal(t *testing.T) {
	received := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	moisture := model.ParameterRef{Code: "moisture", Name: "Moisture", Units: "%"}
	strength := model.ParameterRef{Code: "strength", Name: "Compressive strength", Units: "kgf/cm²"}

	samples := []model.Sample{
		{
			Temperature:    20,
			ReceivedAt:     received,
			Note:           ptr.String("after mixer"),
			MaterialType:   model.Ref{Name: "Molding sand"},
			Material:       model.Ref{Name: "No. 13"},
			MaterialSource: model.Ref{Name: "Sand mixer"},
			TestResults: []model.TestResult{
				{ParameterID: "par_1", Parameter: moisture, MeanValue: ptr.Float64(2.8)},
			},
		},
		{
			Temperature:    16,
			ReceivedAt:     received.Add(time.Hour),
			MaterialType:   model.Ref{Name: "Molding sand"},
			Material:       model.Ref{Name: "No. 8"},
			MaterialSource: model.Ref{Name: "Workplace"},
			TestResults: []model.TestResult{
				{ParameterID: "par_2", Parameter: strength, MeanValue: ptr.Float64(1.25)},
				{ParameterID: "par_1", Parameter: moisture},
			},
		},
	}

	content, err := SampleJournal(samples)
	require.NoError(t, err)

	rows := readRows(t, content, "Samples")
	assert.Equal(t, []string{"Sample journal"}, rows[0])
	assert.Equal(t, []string{
		"No.", "Material type", "Material", "Source", "Temperature, °C",
		"Compressive strength, kgf/cm²", "Moisture, %", "Received at", "Note",
	}, rows[2])
	assert.Equal(t, []string{"1", "Molding sand", "No. 13", "Sand mixer", "20", "", "2.8", "02.03.2026 09:30", "after mixer"}, rows[3])
	assert.Equal(t, []string{"2", "Molding sand", "No. 8", "Workplace", "16", "1.25", "", "02.03.2026 10:30"}, rows[4][:8])
	assert.Equal(t, "Head of laboratory ________", rows[len(rows)-2][0])
}

func TestTestResults(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	content, err := TestResults([]model.TestResultReportRow{
		{
			SampleID:       "smp_1",
			ReceivedAt:     at,
			Temperature:    20,
			MaterialType:   "Molding sand",
			Material:       "No. 13",
			MaterialSource: "Sand mixer",
			Parameter:      "Moisture",
			Units:          "%",
			MeanValue:      ptr.Float64(2.8),
			LowerLimit:     ptr.Float64(2.6),
			UpperLimit:     ptr.Float64(3.1),
			IsCompliant:    true,
			CreatedAt:      at.Add(time.Hour),
		},
		{
			SampleID:    "smp_2",
			ReceivedAt:  at,
			Parameter:   "Appearance",
			IsCompliant: false,
			CreatedAt:   at,
		},
	})
	require.NoError(t, err)

	rows := readRows(t, content, "Test results")
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "Mean", rows[2][9])
	assert.Equal(t, []string{
		"1", "smp_1", "02.03.2026 09:30", "20", "Molding sand", "No. 13", "Sand mixer",
		"Moisture", "%", "2.8", "", "2.6", "3.1", "yes", "02.03.2026 10:30",
	}, rows[3])
	assert.Equal(t, "no", rows[4][13])
}

func TestEmptyReport(t *testing.T) {
	content, err := TestResults(nil)
	require.NoError(t, err)

	rows := readRows(t, content, "Test results")
	assert.Len(t, rows[2], 15)
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 5, 0, time.FixedZone("EET", 2*3600))
	assert.Equal(t, "samples_report_20260302_073005.xlsx", FileName("samples", at))
}
