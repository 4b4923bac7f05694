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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
)

func TestGenerateUUIDWithSuffix(t *testing.T) {
	module := "smp"
	id := GenerateUUIDWithSuffix(module)
	assert.True(t, strings.HasPrefix(id, module+"_"))
	assert.Len(t, id, len(module)+1+36)
	assert.NotEqual(t, id, GenerateUUIDWithSuffix(module))
}

func TestAudit(t *testing.T) {
	var a Audit
	a.Stamp(ptr.String("usr_1"))
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, "usr_1", *a.CreatedBy)

	created := a.CreatedAt
	a.Touch(ptr.String("usr_2"))
	assert.Equal(t, created, a.CreatedAt)
	assert.False(t, a.UpdatedAt.Before(created))
	assert.Equal(t, "usr_1", *a.CreatedBy)
	assert.Equal(t, "usr_2", *a.UpdatedBy)

	a.Touch(nil)
	assert.Nil(t, a.UpdatedBy)
}

func TestNewPage_EmptyDataIsArray(t *testing.T) {
	page := NewPage[Lookup](nil, 1, 1, 0)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"page":1,"totalPages":1,"totalItems":0}`, string(data))
}
