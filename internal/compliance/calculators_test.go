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
	"errors"
	"testing"

	"github.com/jerry-enebeli/soillab/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bentoniteInput(ctx map[string]any) Input {
	return Input{
		Sample:    sample("molding_sand_material", "Бентоніт", "incoming_inspection", 20),
		Parameter: parameter("granulometric_composition"),
		Request:   model.TestResultCreate{Context: ctx},
	}
}

func TestSpecial_Bentonite(t *testing.T) {
	tests := []struct {
		name      string
		context   map[string]any
		compliant bool
		wantErr   error
	}{
		{
			name:      "within limits",
			context:   map[string]any{"sieve_0_4_mm_percent": 3.0, "sieve_0_16_mm_percent": 9.5},
			compliant: true,
		},
		{
			name:      "one sieve over",
			context:   map[string]any{"sieve_0_4_mm_percent": 3.01, "sieve_0_16_mm_percent": 9.5},
			compliant: false,
		},
		{
			name:      "integer values",
			context:   map[string]any{"sieve_0_4_mm_percent": 1, "sieve_0_16_mm_percent": int64(10)},
			compliant: true,
		},
		{
			name:      "json numbers",
			context:   map[string]any{"sieve_0_4_mm_percent": json.Number("2.5"), "sieve_0_16_mm_percent": json.Number("12")},
			compliant: false,
		},
		{
			name:    "missing context",
			context: nil,
			wantErr: ErrMissingContext,
		},
		{
			name:    "missing key",
			context: map[string]any{"sieve_0_4_mm_percent": 1.0},
			wantErr: ErrValidation,
		},
		{
			name:    "not a number",
			context: map[string]any{"sieve_0_4_mm_percent": "1", "sieve_0_16_mm_percent": 1.0},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewResolver().Resolve(bentoniteInput(tt.context))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.compliant, result.IsCompliant)
			assert.Nil(t, result.MeanValue)
			assert.Nil(t, result.LowerLimit)
			assert.Nil(t, result.UpperLimit)
		})
	}
}

func TestSpecial_MissingKeyIsReported(t *testing.T) {
	_, err := NewResolver().Resolve(bentoniteInput(map[string]any{"sieve_0_4_mm_percent": 1.0}))

	var ctxErr ContextError
	require.True(t, errors.As(err, &ctxErr))
	assert.Equal(t, "sieve_0_16_mm_percent", ctxErr.Key)
}

func TestSpecial_PericlaseChromite(t *testing.T) {
	in := Input{
		Sample:    sample("mold_core_coating_material", "Порошок периклазохромітовий (ППХТ)", "shop", 20),
		Parameter: parameter("granulometric_composition"),
		Request: model.TestResultCreate{Context: map[string]any{
			"sum_sieves_2_5_mm_1_6_mm_1_0_mm_percent":    0.0,
			"sum_sieves_0_63_mm_0_4_mm_0_315_mm_percent": 35.5,
			"sum_sieves_0_063_mm_0_05_mm_pan_percent":    60.0,
		}},
	}

	result, err := NewResolver().Resolve(in)
	require.NoError(t, err)
	assert.True(t, result.IsCompliant)

	in.Request.Context["sum_sieves_2_5_mm_1_6_mm_1_0_mm_percent"] = 0.1
	result, err = NewResolver().Resolve(in)
	require.NoError(t, err)
	assert.False(t, result.IsCompliant)
}

func TestSpecial_IronOxide(t *testing.T) {
	tests := []struct {
		name         string
		brand        any
		measurements []float64
		compliant    bool
		lower        float64
		wantErr      bool
	}{
		{name: "hsp 70 in range", brand: "additiv_hsp_70", measurements: []float64{3.0}, compliant: true, lower: 2.80},
		{name: "hsp 70 below", brand: "additiv_hsp_70", measurements: []float64{2.7}, compliant: false, lower: 2.80},
		{name: "h400 accepts lower density", brand: "iron_oxide_type_h400", measurements: []float64{2.7}, compliant: true, lower: 2.60},
		{name: "unknown brand", brand: "other", measurements: []float64{3.0}, wantErr: true},
		{name: "brand not a string", brand: 70, measurements: []float64{3.0}, wantErr: true},
		{name: "no measurements", brand: "additiv_hsp_70", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				Sample:    sample("mold_core_material", "Оксид заліза", "incoming_inspection", 20),
				Parameter: parameter("bulk_density"),
				Request: model.TestResultCreate{
					Measurements: tt.measurements,
					Context:      map[string]any{"material_brand": tt.brand},
				},
			}

			result, err := NewResolver().Resolve(in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.compliant, result.IsCompliant)
			assert.Equal(t, tt.lower, *result.LowerLimit)
			assert.Equal(t, 3.20, *result.UpperLimit)
			assert.Equal(t, tt.measurements[0], *result.MeanValue)
		})
	}
}

func TestCalculate_UnknownMaterial(t *testing.T) {
	_, err := calculate("glass", map[string]Bounds{}, Input{})
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestSpecialRulesHaveCalculators(t *testing.T) {
	for key := range specialRules {
		_, ok := calculatorKinds[key.MaterialName]
		assert.True(t, ok, "material %q has no calculator", key.MaterialName)
	}
}
