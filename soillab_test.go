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

package soillab

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/database/mocks"
	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Configuration {
	return &config.Configuration{
		ProjectName: "soillab-test",
		Auth: config.AuthConfig{
			AccessSecret:     "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessTTLMinutes: 15,
			RefreshTTLDays:   7,
		},
		Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 100},
		Lock:       config.LockConfig{TTLSeconds: 5},
		Cache:      config.CacheConfig{PermissionsTTLSeconds: 900},
		SystemUser: config.SystemUserConfig{
			Email:     "admin@soillab.local",
			Password:  "change-me-please",
			FirstName: "System",
			LastName:  "Admin",
		},
	}
}

func newTestLab(t *testing.T) (*SoilLab, *mocks.MockDataSource, *miniredis.Miniredis) {
	t.Helper()
	cfg := testConfig()
	config.MockConfig(cfg)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ds := &mocks.MockDataSource{}
	t.Cleanup(func() { ds.AssertExpectations(t) })
	return New(ds, client, cfg), ds, mr
}

func assertAPIError(t *testing.T, err error, code apierror.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var apiErr apierror.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %T: %v", err, err)
	assert.Equal(t, code, apiErr.Code, apiErr.Message)
}

func notFound(entity string) error {
	return apierror.NewAPIError(apierror.ErrNotFound, entity+" not found", nil)
}

func TestPageDefaults(t *testing.T) {
	lab, _, _ := newTestLab(t)

	d := lab.PageDefaults()
	assert.Equal(t, 20, d.Size)
	assert.Equal(t, 100, d.MaxSize)
	assert.NotNil(t, lab.Tokens())
}
