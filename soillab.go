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
	"embed"
	"time"

	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/internal/cache"
	"github.com/jerry-enebeli/soillab/internal/compliance"
	"github.com/jerry-enebeli/soillab/internal/query"
	redis_db "github.com/jerry-enebeli/soillab/internal/redis-db"
	"github.com/redis/go-redis/v9"
)

// SoilLab represents the main struct for the laboratory application. It
// holds the services shared by the HTTP handlers and the CLI.
type SoilLab struct {
	datasource database.IDataSource
	redis      redis.UniversalClient
	cache      cache.Cache
	resolver   *compliance.Resolver
	tokens     *auth.TokenManager
	config     *config.Configuration
}

//go:embed sql/*.sql
var SQLFiles embed.FS

// NewSoilLab initializes a new instance of SoilLab with the provided datasource.
// It fetches the configuration and connects to Redis for locks and caching.
func NewSoilLab(db database.IDataSource) (*SoilLab, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	redisClient, err := redis_db.NewRedisClient([]string{configuration.Redis.Dns}, configuration.Redis.SkipTLSVerify)
	if err != nil {
		return nil, err
	}
	return New(db, redisClient.Client(), configuration), nil
}

// New wires a SoilLab from already connected dependencies.
func New(db database.IDataSource, client redis.UniversalClient, configuration *config.Configuration) *SoilLab {
	return &SoilLab{
		datasource: db,
		redis:      client,
		cache:      cache.NewRedisCache(client),
		resolver:   compliance.NewResolver(),
		tokens: auth.NewTokenManager(
			configuration.Auth.AccessSecret,
			configuration.Auth.RefreshSecret,
			configuration.Auth.AccessTTL(),
			configuration.Auth.RefreshTTL(),
		),
		config: configuration,
	}
}

// Tokens returns the token manager used to verify bearer tokens.
func (l *SoilLab) Tokens() *auth.TokenManager {
	return l.tokens
}

// PageDefaults returns the configured page size bounds for list requests.
func (l *SoilLab) PageDefaults() query.PageDefaults {
	return query.PageDefaults{
		Size:    l.config.Pagination.DefaultSize,
		MaxSize: l.config.Pagination.MaxSize,
	}
}

func (l *SoilLab) lockTimeouts() (ttl, wait time.Duration) {
	return time.Duration(l.config.Lock.TTLSeconds) * time.Second,
		time.Duration(l.config.Lock.WaitSeconds) * time.Second
}

func (l *SoilLab) permissionsTTL() time.Duration {
	return time.Duration(l.config.Cache.PermissionsTTLSeconds) * time.Second
}
