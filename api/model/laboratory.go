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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/soillab/model"
)

type MaterialType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (m *MaterialType) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Code, codeRules...),
		validation.Field(&m.Name, nameRules...),
	)
}

func (m MaterialType) ToMaterialType(id string) *model.MaterialType {
	return &model.MaterialType{ID: id, Code: m.Code, Name: m.Name}
}

type Material struct {
	MaterialTypeID string `json:"materialTypeId"`
	Name           string `json:"name"`
}

func (m *Material) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.MaterialTypeID, validation.Required),
		validation.Field(&m.Name, nameRules...),
	)
}

func (m Material) ToMaterial(id string) *model.Material {
	return &model.Material{ID: id, MaterialTypeID: m.MaterialTypeID, Name: m.Name}
}

type MaterialSource struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (m *MaterialSource) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Code, codeRules...),
		validation.Field(&m.Name, nameRules...),
	)
}

func (m MaterialSource) ToMaterialSource(id string) *model.MaterialSource {
	return &model.MaterialSource{ID: id, Code: m.Code, Name: m.Name}
}

type Parameter struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Units string `json:"units"`
}

func (p *Parameter) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Code, codeRules...),
		validation.Field(&p.Name, nameRules...),
		validation.Field(&p.Units, validation.Length(0, 32)),
	)
}

func (p Parameter) ToParameter(id string) *model.Parameter {
	return &model.Parameter{ID: id, Code: p.Code, Name: p.Name, Units: p.Units}
}

// Sample defaults ReceivedAt to the time of creation when omitted.
type Sample struct {
	MaterialID       string     `json:"materialId"`
	MaterialSourceID string     `json:"materialSourceId"`
	Temperature      *float64   `json:"temperature"`
	ReceivedAt       *time.Time `json:"receivedAt"`
	Note             *string    `json:"note"`
}

func (s *Sample) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.MaterialID, validation.Required),
		validation.Field(&s.MaterialSourceID, validation.Required),
		validation.Field(&s.Temperature, validation.NotNil, validation.Min(-60.0), validation.Max(1600.0)),
		validation.Field(&s.Note, validation.Length(0, 1000)),
	)
}

func (s Sample) ToSample(id string) *model.Sample {
	sample := &model.Sample{
		ID:               id,
		MaterialID:       s.MaterialID,
		MaterialSourceID: s.MaterialSourceID,
		Note:             s.Note,
	}
	if s.Temperature != nil {
		sample.Temperature = *s.Temperature
	}
	if s.ReceivedAt != nil {
		sample.ReceivedAt = s.ReceivedAt.UTC()
	}
	return sample
}

type Specification struct {
	ParameterID      string   `json:"parameterId"`
	MaterialID       string   `json:"materialId"`
	MaterialSourceID string   `json:"materialSourceId"`
	MinValue         *float64 `json:"minValue"`
	MaxValue         *float64 `json:"maxValue"`
}

func (s *Specification) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ParameterID, validation.Required),
		validation.Field(&s.MaterialID, validation.Required),
		validation.Field(&s.MaterialSourceID, validation.Required),
	)
}

func (s Specification) ToSpecification(id string) *model.Specification {
	return &model.Specification{
		ID:               id,
		ParameterID:      s.ParameterID,
		MaterialID:       s.MaterialID,
		MaterialSourceID: s.MaterialSourceID,
		MinValue:         s.MinValue,
		MaxValue:         s.MaxValue,
	}
}
