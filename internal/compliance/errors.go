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
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error caused by the submitted result.
var ErrValidation = errors.New("invalid test result")

var (
	ErrMissingMeasurements = fmt.Errorf("%w: at least one measurement is required", ErrValidation)
	ErrMissingContext      = fmt.Errorf("%w: context is required", ErrValidation)

	// ErrUnknownCalculator means a special rule exists without a calculator.
	ErrUnknownCalculator = errors.New("no calculator registered for material")
	// ErrUndetermined means no strategy could evaluate the result.
	ErrUndetermined = errors.New("cannot determine compliance")
)

// ContextError reports a missing or malformed context entry.
type ContextError struct {
	Key    string
	Reason string
}

func (e ContextError) Error() string {
	return fmt.Sprintf("context %q %s", e.Key, e.Reason)
}

func (e ContextError) Unwrap() error {
	return ErrValidation
}
