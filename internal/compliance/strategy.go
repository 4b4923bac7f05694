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

package compliance

import (
	"github.com/jerry-enebeli/soillab/model"
	"github.com/shopspring/decimal"
	"github.com/wacul/ptr"
)

// Input is everything a strategy may inspect. Sample must carry its material,
// material type and material source. Specification is nil when no row exists.
type Input struct {
	Sample        model.Sample
	Parameter     model.Parameter
	Specification *model.Specification
	Request       model.TestResultCreate
}

// Strategy evaluates a test result. It reports ok=false when it does not
// apply to the input, letting the next strategy try.
type Strategy interface {
	Name() string
	Evaluate(in Input) (result model.TestResult, ok bool, err error)
}

const (
	visualParameterCode = "appearance"
	visualContextKey    = "is_visual_test_compliant"
)

// VisualStrategy handles pass/fail visual inspections.
type VisualStrategy struct{}

func (VisualStrategy) Name() string { return "visual" }

func (VisualStrategy) Evaluate(in Input) (model.TestResult, bool, error) {
	if in.Parameter.Code != visualParameterCode {
		return model.TestResult{}, false, nil
	}
	raw, ok := in.Request.Context[visualContextKey]
	if !ok || raw == nil {
		return model.TestResult{}, true, ContextError{Key: visualContextKey, Reason: "is required"}
	}
	compliant, ok := raw.(bool)
	if !ok {
		return model.TestResult{}, true, ContextError{Key: visualContextKey, Reason: "must be a boolean"}
	}

	result := newResult(in)
	result.IsCompliant = compliant
	return result, true, nil
}

// BaseStrategy compares the measurements with the stored specification or,
// failing that, with the temperature dependent rules.
type BaseStrategy struct{}

func (BaseStrategy) Name() string { return "base" }

func (BaseStrategy) Evaluate(in Input) (model.TestResult, bool, error) {
	bounds, ok := baseBounds(in)
	if !ok {
		return model.TestResult{}, false, nil
	}
	if len(in.Request.Measurements) == 0 {
		return model.TestResult{}, true, ErrMissingMeasurements
	}

	mean, variation := summarize(in.Request.Measurements)
	result := newResult(in)
	result.MeanValue = ptr.Float64(mean.InexactFloat64())
	result.VariationPercentage = ptr.Float64(variation.InexactFloat64())
	result.LowerLimit = bounds.Lower
	result.UpperLimit = bounds.Upper
	result.IsCompliant = bounds.Contains(mean)
	return result, true, nil
}

func baseBounds(in Input) (Bounds, bool) {
	if in.Specification != nil {
		return Bounds{Lower: in.Specification.MinValue, Upper: in.Specification.MaxValue}, true
	}
	rule, ok := temperatureRules[keyFor(in)]
	if !ok {
		return Bounds{}, false
	}
	return rule.For(in.Sample.Temperature), true
}

// SpecialStrategy dispatches materials with bespoke acceptance rules.
type SpecialStrategy struct{}

func (SpecialStrategy) Name() string { return "special" }

func (SpecialStrategy) Evaluate(in Input) (model.TestResult, bool, error) {
	key := keyFor(in)
	rule, ok := specialRules[key]
	if !ok {
		return model.TestResult{}, false, nil
	}
	if len(in.Request.Context) == 0 {
		return model.TestResult{}, true, ErrMissingContext
	}
	result, err := calculate(key.MaterialName, rule, in)
	return result, true, err
}

func newResult(in Input) model.TestResult {
	return model.TestResult{
		SampleID:    in.Sample.ID,
		ParameterID: in.Parameter.ID,
	}
}

// summarize returns the arithmetic mean and the spread (max-min) as a
// percentage of the mean, rounded to two places.
func summarize(values []float64) (mean, variation decimal.Decimal) {
	first := decimal.NewFromFloat(values[0])
	sum, lo, hi := decimal.Zero, first, first
	for _, v := range values {
		d := decimal.NewFromFloat(v)
		sum = sum.Add(d)
		lo = decimal.Min(lo, d)
		hi = decimal.Max(hi, d)
	}
	mean = sum.Div(decimal.NewFromInt(int64(len(values))))
	if mean.IsZero() {
		return mean, decimal.Zero
	}
	variation = hi.Sub(lo).Div(mean.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	return mean, variation
}
