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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5001"

	DEFAULT_PAGE_SIZE     = 10
	DEFAULT_MAX_PAGE_SIZE = 100
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL    bool   `json:"ssl" envconfig:"SOILLAB_SERVER_SSL"`
	Domain string `json:"domain" envconfig:"SOILLAB_SERVER_SSL_DOMAIN"`
	Email  string `json:"ssl_email" envconfig:"SOILLAB_SERVER_SSL_EMAIL"`
	Port   string `json:"port" envconfig:"SOILLAB_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns            string `json:"dns" envconfig:"SOILLAB_DATA_SOURCE_DNS"`
	MaxOpenConns   int    `json:"max_open_conns" envconfig:"SOILLAB_DATA_SOURCE_MAX_OPEN_CONNS"`
	ConnectRetries uint64 `json:"connect_retries" envconfig:"SOILLAB_DATA_SOURCE_CONNECT_RETRIES"`
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"SOILLAB_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"SOILLAB_REDIS_SKIP_TLS_VERIFY"`
}

type AuthConfig struct {
	AccessSecret     string `json:"access_secret" envconfig:"SOILLAB_AUTH_ACCESS_SECRET"`
	RefreshSecret    string `json:"refresh_secret" envconfig:"SOILLAB_AUTH_REFRESH_SECRET"`
	AccessTTLMinutes int    `json:"access_ttl_minutes" envconfig:"SOILLAB_AUTH_ACCESS_TTL_MINUTES"`
	RefreshTTLDays   int    `json:"refresh_ttl_days" envconfig:"SOILLAB_AUTH_REFRESH_TTL_DAYS"`
}

func (a AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessTTLMinutes) * time.Minute
}

func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshTTLDays) * 24 * time.Hour
}

type PaginationConfig struct {
	DefaultSize int `json:"default_size" envconfig:"SOILLAB_PAGINATION_DEFAULT_SIZE"`
	MaxSize     int `json:"max_size" envconfig:"SOILLAB_PAGINATION_MAX_SIZE"`
}

type LockConfig struct {
	TTLSeconds  int `json:"ttl_seconds" envconfig:"SOILLAB_LOCK_TTL_SECONDS"`
	WaitSeconds int `json:"wait_seconds" envconfig:"SOILLAB_LOCK_WAIT_SECONDS"`
}

type CacheConfig struct {
	PermissionsTTLSeconds int `json:"permissions_ttl_seconds" envconfig:"SOILLAB_CACHE_PERMISSIONS_TTL_SECONDS"`
}

type LoggingConfig struct {
	Level string `json:"level" envconfig:"SOILLAB_LOGGING_LEVEL"`
}

// TracingConfig points the OTLP HTTP exporter at a collector. Tracing is off
// when Endpoint is empty.
type TracingConfig struct {
	Endpoint string `json:"endpoint" envconfig:"SOILLAB_TRACING_ENDPOINT"`
	Protocol string `json:"protocol" envconfig:"SOILLAB_TRACING_PROTOCOL"`
	Headers  string `json:"headers" envconfig:"SOILLAB_TRACING_HEADERS"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"SOILLAB_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"SOILLAB_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"SOILLAB_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"SOILLAB_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

// SystemUserConfig is the superuser seeded by the createsuperuser command.
type SystemUserConfig struct {
	Email     string `json:"email" envconfig:"SOILLAB_SYSTEM_USER_EMAIL"`
	Password  string `json:"password" envconfig:"SOILLAB_SYSTEM_USER_PASSWORD"`
	FirstName string `json:"first_name" envconfig:"SOILLAB_SYSTEM_USER_FIRST_NAME"`
	LastName  string `json:"last_name" envconfig:"SOILLAB_SYSTEM_USER_LAST_NAME"`
}

type Configuration struct {
	ProjectName  string           `json:"project_name" envconfig:"SOILLAB_PROJECT_NAME"`
	Server       ServerConfig     `json:"server"`
	DataSource   DataSourceConfig `json:"data_source"`
	Redis        RedisConfig      `json:"redis"`
	Auth         AuthConfig       `json:"auth"`
	Pagination   PaginationConfig `json:"pagination"`
	Lock         LockConfig       `json:"lock"`
	Cache        CacheConfig      `json:"cache"`
	Logging      LoggingConfig    `json:"logging"`
	Tracing      TracingConfig    `json:"tracing"`
	Notification Notification     `json:"notification"`
	RateLimit    RateLimitConfig  `json:"rate_limit"`
	SystemUser   SystemUserConfig `json:"system_user"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("soillab", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	setLogLevel(cnf.Logging.Level)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called soillab.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Soil Lab"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Redis.Dns == "" {
		log.Println("Error: Redis DNS is empty. It's a required field.")
		return errors.New("redis DNS is required")
	}

	if cnf.Auth.AccessSecret == "" || cnf.Auth.RefreshSecret == "" {
		log.Println("Error: Auth secrets are empty. They are required fields.")
		return errors.New("auth access and refresh secrets are required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.DataSource.MaxOpenConns <= 0 {
		cnf.DataSource.MaxOpenConns = 25
	}
	if cnf.DataSource.ConnectRetries == 0 {
		cnf.DataSource.ConnectRetries = 5
	}

	if cnf.Auth.AccessTTLMinutes <= 0 {
		cnf.Auth.AccessTTLMinutes = 60
	}
	if cnf.Auth.RefreshTTLDays <= 0 {
		cnf.Auth.RefreshTTLDays = 7
	}

	if cnf.Pagination.DefaultSize <= 0 {
		cnf.Pagination.DefaultSize = DEFAULT_PAGE_SIZE
	}
	if cnf.Pagination.MaxSize <= 0 {
		cnf.Pagination.MaxSize = DEFAULT_MAX_PAGE_SIZE
	}
	if cnf.Pagination.DefaultSize > cnf.Pagination.MaxSize {
		log.Printf("Warning: default page size %d exceeds max %d. Clamping.", cnf.Pagination.DefaultSize, cnf.Pagination.MaxSize)
		cnf.Pagination.DefaultSize = cnf.Pagination.MaxSize
	}

	if cnf.Lock.TTLSeconds <= 0 {
		cnf.Lock.TTLSeconds = 30
	}
	if cnf.Lock.WaitSeconds <= 0 {
		cnf.Lock.WaitSeconds = 5
	}

	if cnf.Cache.PermissionsTTLSeconds <= 0 {
		cnf.Cache.PermissionsTTLSeconds = 900
	}

	if cnf.Logging.Level == "" {
		cnf.Logging.Level = "info"
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	// Set default cleanup interval if not specified
	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
		log.Printf("Warning: Rate limit cleanup interval not specified. Setting default value: %d seconds", defaultCleanup)
	}

	return nil
}

// SetTracingExporterEnvs exports the tracing section as the standard OTLP
// environment variables read by the exporter.
func SetTracingExporterEnvs() error {
	cnf, err := Fetch()
	if err != nil {
		return err
	}
	envs := map[string]string{
		"OTEL_EXPORTER_OTLP_ENDPOINT": cnf.Tracing.Endpoint,
		"OTEL_EXPORTER_OTLP_PROTOCOL": cnf.Tracing.Protocol,
		"OTEL_EXPORTER_OTLP_HEADERS":  cnf.Tracing.Headers,
	}
	for key, value := range envs {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}

func setLogLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("unknown log level %q, keeping %s", level, logrus.GetLevel())
		return
	}
	logrus.SetLevel(parsed)
}
