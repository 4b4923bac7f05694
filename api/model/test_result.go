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
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/soillab/model"
)

const maxMeasurements = 100

// TestResult is the body of POST /test-results. Context is a JSON object
// encoded as a string, e.g. "{\"is_visual_test_compliant\": true}".
type TestResult struct {
	SampleID     string    `json:"sampleId"`
	ParameterID  string    `json:"parameterId"`
	Measurements []float64 `json:"measurements"`
	Context      string    `json:"context"`
}

func (t *TestResult) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.SampleID, validation.Required),
		validation.Field(&t.ParameterID, validation.Required),
		validation.Field(&t.Measurements, validation.Length(0, maxMeasurements)),
		validation.Field(&t.Context, validation.By(func(interface{}) error {
			_, err := decodeContext(t.Context)
			return err
		})),
	)
}

// ToTestResultCreate decodes the context. Numbers are kept as json.Number.
func (t TestResult) ToTestResultCreate() (model.TestResultCreate, error) {
	ctx, err := decodeContext(t.Context)
	if err != nil {
		return model.TestResultCreate{}, err
	}
	return model.TestResultCreate{
		SampleID:     t.SampleID,
		ParameterID:  t.ParameterID,
		Measurements: t.Measurements,
		Context:      ctx,
	}, nil
}

func decodeContext(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var ctx map[string]any
	if err := dec.Decode(&ctx); err != nil || ctx == nil {
		return nil, errors.New("must be a JSON object")
	}
	return ctx, nil
}
