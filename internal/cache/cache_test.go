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

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, NewRedisCache(client)
}

func TestNewCache(t *testing.T) {
	server := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{Redis: config.RedisConfig{Dns: server.Addr()}})

	c, err := NewCache()
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))
	assert.True(t, server.Exists("k"))
}

func TestSetAndGet(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	user := model.UserData{
		UserID:      "usr_1",
		Email:       "lab@example.com",
		IsActive:    true,
		Permissions: []string{"samples.read", "test_results.*"},
	}
	require.NoError(t, c.Set(ctx, "user-data:usr_1", user, 10*time.Minute))

	var got model.UserData
	require.NoError(t, c.Get(ctx, "user-data:usr_1", &got))
	assert.Equal(t, user, got)
}

func TestGetNonExistentKey(t *testing.T) {
	_, c := newTestCache(t)

	var got map[string]string
	err := c.Get(context.Background(), "nonExistentKey", &got)
	assert.ErrorIs(t, err, ErrMiss)
	assert.Empty(t, got)
}

func TestTTLIsApplied(t *testing.T) {
	server, c := newTestCache(t)
	require.NoError(t, c.Set(context.Background(), "k", "v", 15*time.Minute))
	assert.Equal(t, 15*time.Minute, server.TTL("k"))
}

func TestDelete(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "testKey", "testValue", 10*time.Minute))
	require.NoError(t, c.Delete(ctx, "testKey"))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "testKey", &got), ErrMiss)

	// Test deleting a non-existent key
	assert.NoError(t, c.Delete(ctx, "nonExistentKey"))
}
