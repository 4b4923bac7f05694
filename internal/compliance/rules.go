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
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wacul/ptr"
)

// RuleKey identifies a rule by parameter code, material type code, lowercase
// material name and material source code.
type RuleKey struct {
	ParameterCode      string
	MaterialTypeCode   string
	MaterialName       string
	MaterialSourceCode string
}

func keyFor(in Input) RuleKey {
	return RuleKey{
		ParameterCode:      in.Parameter.Code,
		MaterialTypeCode:   in.Sample.MaterialType.Code,
		MaterialName:       strings.ToLower(in.Sample.Material.Name),
		MaterialSourceCode: in.Sample.MaterialSource.Code,
	}
}

// Bounds is an inclusive range. A nil side is unbounded.
type Bounds struct {
	Lower *float64
	Upper *float64
}

func (b Bounds) Contains(v decimal.Decimal) bool {
	if b.Lower != nil && v.LessThan(decimal.NewFromFloat(*b.Lower)) {
		return false
	}
	if b.Upper != nil && v.GreaterThan(decimal.NewFromFloat(*b.Upper)) {
		return false
	}
	return true
}

func between(lower, upper float64) Bounds {
	return Bounds{Lower: ptr.Float64(lower), Upper: ptr.Float64(upper)}
}

func atMost(upper float64) Bounds {
	return Bounds{Upper: ptr.Float64(upper)}
}

// temperatureThreshold splits warm and cold bounds, in °C.
const temperatureThreshold = 18.0

// TemperatureRule holds bounds for samples at or above the threshold (Warm)
// and below it (Cold).
type TemperatureRule struct {
	Warm Bounds
	Cold Bounds
}

func (r TemperatureRule) For(temperature float64) Bounds {
	if temperature >= temperatureThreshold {
		return r.Warm
	}
	return r.Cold
}

var temperatureRules = map[RuleKey]TemperatureRule{
	{"moisture", "molding_sand", "№13 (наповнювальна)", "sand_mixer"}: {
		Warm: between(2.60, 3.10), Cold: between(2.50, 3.00),
	},
	{"moisture", "molding_sand", "№14 (облицювальна)", "sand_mixer"}: {
		Warm: between(3.40, 3.70), Cold: between(3.30, 3.50),
	},
	{"moisture", "molding_sand", "№15 (для освіження)", "sand_mixer"}: {
		Warm: between(2.60, 3.10), Cold: between(2.50, 3.00),
	},
	{"moisture", "molding_sand", "№8", "workplace"}: {
		Warm: between(4.70, 6.00), Cold: between(4.70, 5.00),
	},
	{"moisture", "molding_sand", "№8", "sand_mixer"}: {
		Warm: between(4.70, 6.00), Cold: between(4.70, 5.00),
	},
	{"temperature", "molding_sand_material", "пісок формувальний", "storage_hopper"}: {
		Warm: between(20.00, 40.00), Cold: between(10.00, 40.00),
	},
}

const (
	materialBentonite         = "бентоніт"
	materialIronOxide         = "оксид заліза"
	materialPericlaseChromite = "порошок периклазохромітовий (ппхт)"
)

// specialRules maps a rule key to named bounds. Depending on the material the
// names are context keys that must all comply, or alternatives selected by a
// context value.
var specialRules = map[RuleKey]map[string]Bounds{
	{"granulometric_composition", "molding_sand_material", materialBentonite, "incoming_inspection"}: {
		"sieve_0_4_mm_percent":  atMost(3.00),
		"sieve_0_16_mm_percent": atMost(10.00),
	},
	{"bulk_density", "mold_core_material", materialIronOxide, "incoming_inspection"}: {
		"additiv_hsp_70":       between(2.80, 3.20),
		"iron_oxide_type_h400": between(2.60, 3.20),
	},
	{"granulometric_composition", "mold_core_coating_material", materialPericlaseChromite, "shop"}: {
		"sum_sieves_2_5_mm_1_6_mm_1_0_mm_percent":    atMost(0.00),
		"sum_sieves_0_63_mm_0_4_mm_0_315_mm_percent": atMost(40.00),
		"sum_sieves_0_063_mm_0_05_mm_pan_percent":    atMost(60.00),
	},
}
