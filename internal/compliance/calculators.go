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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jerry-enebeli/soillab/model"
	"github.com/shopspring/decimal"
	"github.com/wacul/ptr"
)

type calculatorKind int

const (
	calculatorUnknown calculatorKind = iota
	calculatorSieves
	calculatorBrand
)

const brandContextKey = "material_brand"

// calculatorKinds selects the calculator for a lowercase material name.
var calculatorKinds = map[string]calculatorKind{
	materialBentonite:         calculatorSieves,
	materialPericlaseChromite: calculatorSieves,
	materialIronOxide:         calculatorBrand,
}

func calculate(material string, rule map[string]Bounds, in Input) (model.TestResult, error) {
	switch calculatorKinds[material] {
	case calculatorSieves:
		return sieveCalculator(rule, in)
	case calculatorBrand:
		return brandCalculator(rule, in)
	default:
		return model.TestResult{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, material)
	}
}

// sieveCalculator requires every rule key in the context and complies when
// all of them are within bounds. No numeric summary is recorded.
func sieveCalculator(rule map[string]Bounds, in Input) (model.TestResult, error) {
	keys := make([]string, 0, len(rule))
	for key := range rule {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	compliant := true
	for _, key := range keys {
		value, err := contextNumber(in.Request.Context, key)
		if err != nil {
			return model.TestResult{}, err
		}
		if !rule[key].Contains(value) {
			compliant = false
		}
	}

	result := newResult(in)
	result.IsCompliant = compliant
	return result, nil
}

// brandCalculator picks the bounds named by the material brand in the
// context and checks the measurements against them.
func brandCalculator(rule map[string]Bounds, in Input) (model.TestResult, error) {
	raw, ok := in.Request.Context[brandContextKey]
	if !ok || raw == nil {
		return model.TestResult{}, ContextError{Key: brandContextKey, Reason: "is required"}
	}
	brand, ok := raw.(string)
	if !ok {
		return model.TestResult{}, ContextError{Key: brandContextKey, Reason: "must be a string"}
	}
	bounds, ok := rule[brand]
	if !ok {
		return model.TestResult{}, ContextError{Key: brandContextKey, Reason: fmt.Sprintf("has unknown value %q", brand)}
	}
	if len(in.Request.Measurements) == 0 {
		return model.TestResult{}, ErrMissingMeasurements
	}

	mean, variation := summarize(in.Request.Measurements)
	result := newResult(in)
	result.MeanValue = ptr.Float64(mean.InexactFloat64())
	result.VariationPercentage = ptr.Float64(variation.InexactFloat64())
	result.LowerLimit = bounds.Lower
	result.UpperLimit = bounds.Upper
	result.IsCompliant = bounds.Contains(mean)
	return result, nil
}

func contextNumber(ctx map[string]any, key string) (decimal.Decimal, error) {
	raw, ok := ctx[key]
	if !ok || raw == nil {
		return decimal.Zero, ContextError{Key: key, Reason: "is required"}
	}
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, ContextError{Key: key, Reason: "must be a number"}
		}
		return d, nil
	default:
		return decimal.Zero, ContextError{Key: key, Reason: "must be a number"}
	}
}
