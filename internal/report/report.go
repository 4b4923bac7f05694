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

// Package report renders laboratory journals as XLSX workbooks.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/jerry-enebeli/soillab/model"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	titleRow     = 1
	headerRow    = 3
	firstDataRow = 4

	timeLayout = "02.01.2006 15:04"
)

type table struct {
	sheet   string
	title   string
	headers []string
	rows    [][]any
}

// FileName builds the attachment name of a report generated at at.
func FileName(kind string, at time.Time) string {
	return fmt.Sprintf("%s_report_%s.xlsx", kind, at.UTC().Format("20060102_150405"))
}

// SampleJournal renders one row per sample with the mean value of every
// parameter tested on any of them, one column per parameter.
func SampleJournal(samples []model.Sample) ([]byte, error) {
	params := journalParameters(samples)

	headers := []string{"No.", "Material type", "Material", "Source", "Temperature, °C"}
	for _, p := range params {
		header := p.Name
		if p.Units != "" {
			header += ", " + p.Units
		}
		headers = append(headers, header)
	}
	headers = append(headers, "Received at", "Note")

	rows := make([][]any, 0, len(samples))
	for i, s := range samples {
		means := make(map[string]*float64, len(s.TestResults))
		for _, tr := range s.TestResults {
			means[tr.ParameterID] = tr.MeanValue
		}

		row := []any{i + 1, s.MaterialType.Name, s.Material.Name, s.MaterialSource.Name, s.Temperature}
		for _, p := range params {
			row = append(row, optional(means[p.ID]))
		}
		note := ""
		if s.Note != nil {
			note = *s.Note
		}
		row = append(row, s.ReceivedAt.UTC().Format(timeLayout), note)
		rows = append(rows, row)
	}

	return render(table{sheet: "Samples", title: "Sample journal", headers: headers, rows: rows})
}

// journalParameters returns the distinct parameters of the samples' results
// sorted by name.
func journalParameters(samples []model.Sample) []model.ParameterRef {
	seen := make(map[string]bool)
	var params []model.ParameterRef
	for _, s := range samples {
		for _, tr := range s.TestResults {
			if seen[tr.ParameterID] {
				continue
			}
			seen[tr.ParameterID] = true
			ref := tr.Parameter
			ref.ID = tr.ParameterID
			params = append(params, ref)
		}
	}
	sort.SliceStable(params, func(i, j int) bool {
		if params[i].Name == params[j].Name {
			return params[i].ID < params[j].ID
		}
		return params[i].Name < params[j].Name
	})
	return params
}

// TestResults renders one row per test result.
func TestResults(results []model.TestResultReportRow) ([]byte, error) {
	headers := []string{
		"No.", "Sample", "Received at", "Temperature, °C", "Material type", "Material", "Source",
		"Parameter", "Units", "Mean", "Variation, %", "Lower limit", "Upper limit", "Compliant", "Tested at",
	}

	rows := make([][]any, 0, len(results))
	for i, r := range results {
		compliant := "no"
		if r.IsCompliant {
			compliant = "yes"
		}
		rows = append(rows, []any{
			i + 1,
			r.SampleID,
			r.ReceivedAt.UTC().Format(timeLayout),
			r.Temperature,
			r.MaterialType,
			r.Material,
			r.MaterialSource,
			r.Parameter,
			r.Units,
			optional(r.MeanValue),
			optional(r.VariationPercentage),
			optional(r.LowerLimit),
			optional(r.UpperLimit),
			compliant,
			r.CreatedAt.UTC().Format(timeLayout),
		})
	}

	return render(table{sheet: "Test results", title: "Test results", headers: headers, rows: rows})
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func render(t table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(t.sheet, cell(1, titleRow), t.title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(t.sheet, cell(1, titleRow), cell(1, titleRow), title); err != nil {
		return nil, err
	}

	header := make([]any, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.sheet, cell(1, headerRow), &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(t.sheet, cell(1, headerRow), cell(len(t.headers), headerRow), bold); err != nil {
		return nil, err
	}

	for i, row := range t.rows {
		row := row
		if err := f.SetSheetRow(t.sheet, cell(1, firstDataRow+i), &row); err != nil {
			return nil, err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(t.headers))
	if err := f.SetColWidth(t.sheet, "A", last, 18); err != nil {
		return nil, err
	}

	signature := firstDataRow + len(t.rows) + 2
	if err := f.SetCellValue(t.sheet, cell(1, signature), "Head of laboratory ________"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(t.sheet, cell(1, signature+1), "Date ________"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
