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
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/soillab/model"
)

// Codes are stable machine identifiers such as "molding_sand".
var (
	codePattern           = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
	permissionCodePattern = regexp.MustCompile(`^([a-z0-9_]+|\*)\.([a-z0-9_]+|\*)$`)
)

var codeRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 64),
	validation.Match(codePattern).Error("must be lower snake case"),
}

var nameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 255),
}

// Report is the body of the report endpoints. Both bounds are optional; an
// empty body reports on today.
type Report struct {
	DateFrom *time.Time `json:"dateFrom"`
	DateTo   *time.Time `json:"dateTo"`
}

func (r *Report) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DateTo, validation.By(func(interface{}) error {
			if r.DateFrom != nil && r.DateTo != nil && !r.DateTo.After(*r.DateFrom) {
				return validation.NewError("validation_date_range", "must be after dateFrom")
			}
			return nil
		})),
	)
}

func (r Report) ToReportRange() model.ReportRange {
	return model.ReportRange{From: r.DateFrom, To: r.DateTo}
}
