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
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateUUIDWithSuffix generates a UUID with a given module name as a prefix,
// e.g. "smp_4f0c...". It keeps identifiers self-describing in logs and reports.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// Audit holds the bookkeeping columns shared by every table.
type Audit struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	CreatedBy *string   `json:"createdBy,omitempty" db:"created_by"`
	UpdatedBy *string   `json:"updatedBy,omitempty" db:"updated_by"`
}

// Stamp sets the audit columns for an insert made by actor.
func (a *Audit) Stamp(actor *string) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedBy = actor
	a.UpdatedBy = actor
}

// Touch sets the audit columns for an update made by actor.
func (a *Audit) Touch(actor *string) {
	a.UpdatedAt = time.Now().UTC()
	a.UpdatedBy = actor
}

// Ref is the compact form of a related row embedded in a response.
type Ref struct {
	ID   string `json:"id" db:"id"`
	Code string `json:"code,omitempty" db:"code"`
	Name string `json:"name" db:"name"`
}

// Lookup is a row of a lookup listing used to populate pickers.
type Lookup struct {
	ID   string `json:"id" db:"id"`
	Code string `json:"code,omitempty" db:"code"`
	Name string `json:"name" db:"name"`
}

// Page is the paginated list envelope.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// NewPage wraps items into a Page. Data is never serialized as null.
func NewPage[T any](items []T, page, totalPages, totalItems int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data:       items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}
