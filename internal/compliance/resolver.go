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

// Package compliance decides whether a submitted test result meets the
// acceptance rules of the laboratory.
package compliance

import (
	"fmt"

	"github.com/jerry-enebeli/soillab/model"
	"github.com/sirupsen/logrus"
)

// Resolver runs strategies in priority order; the first applicable one wins.
type Resolver struct {
	strategies []Strategy
}

// NewResolver returns a Resolver using the given strategies, or the default
// chain visual, base, special when none are given.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = []Strategy{VisualStrategy{}, BaseStrategy{}, SpecialStrategy{}}
	}
	return &Resolver{strategies: strategies}
}

// Resolve evaluates the input against the strategy chain.
// Parameters:
// - in: The sample, parameter, optional specification row and submitted values.
// Returns:
//   - model.TestResult: The unsaved result of the first applicable strategy.
//   - error: The validation failure of the matched strategy as is, or
//     ErrUndetermined when no strategy applies.
func (r *Resolver) Resolve(in Input) (model.TestResult, error) {
	for _, s := range r.strategies {
		result, ok, err := s.Evaluate(in)
		if !ok {
			continue
		}
		if err != nil {
			return model.TestResult{}, err
		}
		logrus.WithFields(logrus.Fields{
			"strategy":     s.Name(),
			"sample_id":    in.Sample.ID,
			"parameter_id": in.Parameter.ID,
			"compliant":    result.IsCompliant,
		}).Debug("test result resolved")
		return result, nil
	}
	return model.TestResult{}, fmt.Errorf("%w for parameter %q of material %q from source %q",
		ErrUndetermined, in.Parameter.Code, in.Sample.Material.Name, in.Sample.MaterialSource.Code)
}
