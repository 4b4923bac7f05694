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
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Join is an inner join to a related table, e.g.
//
//	Join{Table: "material_types", Alias: "mt", On: "mt.id = m.material_type_id"}
type Join struct {
	Table string
	Alias string
	On    string
}

// Key identifies the join for de-duplication. Two joins with the same alias
// target the same relation.
func (j Join) Key() string {
	if j.Alias != "" {
		return j.Alias
	}
	return j.Table
}

func (j Join) clause() string {
	if j.Alias != "" {
		return fmt.Sprintf("%s %s ON %s", j.Table, j.Alias, j.On)
	}
	return fmt.Sprintf("%s ON %s", j.Table, j.On)
}

// MergeJoins concatenates join lists keeping the first occurrence of every key.
func MergeJoins(groups ...[]Join) []Join {
	seen := make(map[string]struct{})
	var merged []Join
	for _, group := range groups {
		for _, j := range group {
			if _, ok := seen[j.Key()]; ok {
				continue
			}
			seen[j.Key()] = struct{}{}
			merged = append(merged, j)
		}
	}
	return merged
}

func applyJoins(b sq.SelectBuilder, joins []Join) sq.SelectBuilder {
	for _, j := range joins {
		b = b.Join(j.clause())
	}
	return b
}
