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
	"errors"
	"fmt"

	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/compliance"
	redlock "github.com/jerry-enebeli/soillab/internal/lock"
	"github.com/jerry-enebeli/soillab/internal/notification"
	"github.com/jerry-enebeli/soillab/internal/query"
	"github.com/jerry-enebeli/soillab/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("soillab.testresults")

// CreateTestResult evaluates a parameter test on a sample and stores it,
// replacing any previous result of the same sample and parameter.
//
// The pair is serialized with a Redis lock for the whole read, evaluate and
// write sequence, so two concurrent submissions cannot both survive.
func (l *SoilLab) CreateTestResult(ctx context.Context, req model.TestResultCreate) (*model.TestResult, error) {
	ctx, span := tracer.Start(ctx, "Creating test result")
	defer span.End()

	locker := redlock.NewTestResultLocker(l.redis, req.SampleID, req.ParameterID)
	ttl, wait := l.lockTimeouts()
	if err := locker.WaitLock(ctx, ttl, wait); err != nil {
		if errors.Is(err, redlock.ErrLockHeld) {
			return nil, apierror.NewAPIError(apierror.ErrConflict, "a test result for this sample and parameter is already being recorded", nil)
		}
		return nil, l.internalError(pkgerrors.Wrap(err, "acquire test result lock"))
	}
	defer func() {
		// The request context may be done by now; the lock must still go.
		if err := locker.Unlock(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).WithField("key", locker.Key()).Warn("failed to release test result lock")
		}
	}()

	sample, err := l.liveSample(ctx, req.SampleID)
	if err != nil {
		return nil, err
	}
	parameter, err := l.liveParameter(ctx, req.ParameterID)
	if err != nil {
		return nil, err
	}
	spec, err := l.datasource.FindSpecification(ctx, parameter.ID, sample.MaterialID, sample.MaterialSourceID)
	if err != nil {
		return nil, err
	}

	result, err := l.resolver.Resolve(compliance.Input{
		Sample:        *sample,
		Parameter:     *parameter,
		Specification: spec,
		Request:       req,
	})
	if err != nil {
		span.RecordError(err)
		apiErr := apierror.FromError(err)
		if apiErr.Code == apierror.ErrInternalServer {
			notification.NotifyError(err)
		}
		return nil, apiErr
	}

	result.Measurements = make([]model.Measurement, len(req.Measurements))
	for i, v := range req.Measurements {
		result.Measurements[i] = model.Measurement{Value: v}
	}
	if err := l.datasource.ReplaceTestResult(ctx, &result); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"test_result_id": result.ID,
		"sample_id":      result.SampleID,
		"parameter_id":   result.ParameterID,
		"compliant":      result.IsCompliant,
	}).Info("test result recorded")

	return l.datasource.GetTestResultByID(ctx, result.ID)
}

// liveSample loads a sample that is referenced by a request body.
func (l *SoilLab) liveSample(ctx context.Context, id string) (*model.Sample, error) {
	sample, err := l.datasource.GetSampleByID(ctx, id)
	if isNotFound(err) || (err == nil && sample.DeletedAt != nil) {
		return nil, apierror.RelatedNotFound("sample", []string{id})
	}
	return sample, err
}

func (l *SoilLab) liveParameter(ctx context.Context, id string) (*model.Parameter, error) {
	parameter, err := l.datasource.GetParameterByID(ctx, id)
	if isNotFound(err) {
		return nil, apierror.RelatedNotFound("parameter", []string{id})
	}
	if err != nil {
		return nil, err
	}
	if parameter.ArchivedAt != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("parameter %s is archived", parameter.Code), nil)
	}
	return parameter, nil
}

func (l *SoilLab) GetTestResult(ctx context.Context, id string) (*model.TestResult, error) {
	return l.datasource.GetTestResultByID(ctx, id)
}

func (l *SoilLab) ListTestResults(ctx context.Context, p query.Params) (model.Page[model.TestResult], error) {
	return l.datasource.ListTestResults(ctx, p)
}

// DeleteTestResult hard deletes a result together with its measurements.
func (l *SoilLab) DeleteTestResult(ctx context.Context, id string) error {
	return l.datasource.DeleteTestResult(ctx, id)
}

func (l *SoilLab) GetMeasurement(ctx context.Context, id string) (*model.Measurement, error) {
	return l.datasource.GetMeasurementByID(ctx, id)
}

func (l *SoilLab) ListMeasurements(ctx context.Context, p query.Params) (model.Page[model.Measurement], error) {
	return l.datasource.ListMeasurements(ctx, p)
}

func isNotFound(err error) bool {
	var apiErr apierror.APIError
	return errors.As(err, &apiErr) && apiErr.Code == apierror.ErrNotFound
}

// internalError reports an unexpected failure to the error channel and hides
// its details from the client.
func (l *SoilLab) internalError(err error) error {
	notification.NotifyError(err)
	return apierror.NewAPIError(apierror.ErrInternalServer, "internal server error", err.Error())
}
