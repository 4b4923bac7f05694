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

package query

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every error caused by client supplied query input.
// Callers match it with errors.Is and answer with a 400.
var ErrValidation = errors.New("invalid query")

var (
	ErrInvalidPageNumber   = fmt.Errorf("%w: page number must be greater than or equal to 1", ErrValidation)
	ErrInvalidPageSize     = fmt.Errorf("%w: page size must be greater than or equal to 0", ErrValidation)
	ErrPageOutOfRange      = fmt.Errorf("%w: page number is out of range", ErrValidation)
	ErrSearchTooShort      = fmt.Errorf("%w: search query is too short", ErrValidation)
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// ValidationError describes a single rejected query parameter.
type ValidationError struct {
	Param   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrValidation
}

// ConfigError reports a broken specification declaration. It is raised once,
// when the declaration is built, and never depends on request input.
type ConfigError struct {
	Kind   string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Kind, e.Reason)
}
