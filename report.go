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

package soillab

import (
	"context"
	"time"

	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/report"
	"github.com/jerry-enebeli/soillab/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Report is a rendered attachment.
type Report struct {
	FileName    string
	ContentType string
	Content     []byte
	Rows        int
	GeneratedAt time.Time
}

// SampleReport renders the sample journal of the samples received in r.
func (l *SoilLab) SampleReport(ctx context.Context, r model.ReportRange) (*Report, error) {
	ctx, span := tracer.Start(ctx, "Generating sample report")
	defer span.End()

	now := time.Now().UTC()
	from, to := r.Bounds(now)
	samples, err := l.datasource.SamplesReceivedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "no samples received in the requested period", nil)
	}

	content, err := report.SampleJournal(samples)
	if err != nil {
		span.RecordError(err)
		return nil, l.internalError(pkgerrors.Wrap(err, "render sample journal"))
	}
	logrus.WithFields(logrus.Fields{"from": from, "to": to, "rows": len(samples)}).Info("sample report generated")

	return &Report{
		FileName:    report.FileName("samples", now),
		ContentType: report.ContentType,
		Content:     content,
		Rows:        len(samples),
		GeneratedAt: now,
	}, nil
}

// TestResultReport renders the test results recorded in r.
func (l *SoilLab) TestResultReport(ctx context.Context, r model.ReportRange) (*Report, error) {
	ctx, span := tracer.Start(ctx, "Generating test result report")
	defer span.End()

	now := time.Now().UTC()
	from, to := r.Bounds(now)
	rows, err := l.datasource.TestResultsCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "no test results recorded in the requested period", nil)
	}

	content, err := report.TestResults(rows)
	if err != nil {
		span.RecordError(err)
		return nil, l.internalError(pkgerrors.Wrap(err, "render test result report"))
	}
	logrus.WithFields(logrus.Fields{"from": from, "to": to, "rows": len(rows)}).Info("test result report generated")

	return &Report{
		FileName:    report.FileName("test_results", now),
		ContentType: report.ContentType,
		Content:     content,
		Rows:        len(rows),
		GeneratedAt: now,
	}, nil
}
