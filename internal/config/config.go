package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the foodbridge service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP API, health and metrics endpoints.
// - Backend: Where the food-donation backend lives and how long to wait for it.
// - SyncSchedule: Cron spec for pulling listing snapshots from the backend.
// - Geocoder: Provider selection and worker pool settings for address geocoding.
// - CacheTTL: How long fetched listing snapshots stay in Redis.
// - PageSize: Default number of listings per feed page.
// - Database: Configuration settings for the PostgreSQL database.
// - Redis: Configuration settings for the Redis cache.
type Config struct {
	Env          string         `mapstructure:"env"`           // Env is the current environment: local, dev, prod.
	Port         int            `mapstructure:"port"`          // Port is the HTTP server port.
	Backend      BackendConfig  `mapstructure:"backend"`       // Backend holds the external API settings.
	SyncSchedule string         `mapstructure:"sync_schedule"` // SyncSchedule is a cron spec, e.g. "@every 5m".
	Geocoder     GeocoderConfig `mapstructure:"geocoder"`      // Geocoder holds the geocoding settings.
	CacheTTL     time.Duration  `mapstructure:"cache_ttl"`     // CacheTTL bounds snapshot staleness.
	PageSize     int            `mapstructure:"page_size"`     // PageSize is the default feed page size.
	Database     PostgresConfig `mapstructure:"postgres"`      // Database holds the postgres database configuration
	Redis        RedisConfig    `mapstructure:"redis"`         // Redis holds the cache configuration
}

// BackendConfig points at the food-donation backend API.
type BackendConfig struct {
	URL       string        `mapstructure:"url"`        // URL is the API base, e.g. http://localhost:8080/api.
	Timeout   time.Duration `mapstructure:"timeout"`    // Timeout bounds every backend call.
	RateLimit int           `mapstructure:"rate_limit"` // RateLimit is requests per second, 0 for none.
}

// GeocoderConfig selects the geocoding provider and sizes the worker pool.
type GeocoderConfig struct {
	ProviderType string        `mapstructure:"provider_type"`  // ProviderType is google, nominatim or visicom.
	APIKey       string        `mapstructure:"provider_key"`   // APIKey for providers that need one.
	Workers      int           `mapstructure:"workers"`        // Workers is the number of concurrent geocoders.
	Interval     time.Duration `mapstructure:"interval"`       // Interval between geocoding batches.
	AddrPrefix   string        `mapstructure:"address_prefix"` // AddrPrefix is prepended for more accurate geocoding.
	Region       string        `mapstructure:"region"`         // Region is a ccTLD biasing Google results, e.g. "ua".
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"db_name"`  // Name is the name of the database.
}

// RedisConfig holds the connection details of the snapshot cache.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// bindings maps configuration keys to the environment variables that set them.
var bindings = map[string]string{
	"env":                     "FOODBRIDGE_ENV",
	"port":                    "FOODBRIDGE_PORT",
	"backend.url":             "FOODBRIDGE_BACKEND_URL",
	"backend.timeout":         "FOODBRIDGE_BACKEND_TIMEOUT",
	"backend.rate_limit":      "FOODBRIDGE_BACKEND_RATE_LIMIT",
	"sync_schedule":           "FOODBRIDGE_SYNC_SCHEDULE",
	"geocoder.provider_type":  "FOODBRIDGE_PROVIDER_TYPE",
	"geocoder.provider_key":   "FOODBRIDGE_PROVIDER_KEY",
	"geocoder.workers":        "FOODBRIDGE_GEOCODER_WORKERS",
	"geocoder.interval":       "FOODBRIDGE_GEOCODER_INTERVAL",
	"geocoder.address_prefix": "FOODBRIDGE_ADDRESS_PREFIX",
	"geocoder.region":         "FOODBRIDGE_GEOCODER_REGION",
	"cache_ttl":               "FOODBRIDGE_CACHE_TTL",
	"page_size":               "FOODBRIDGE_PAGE_SIZE",
	"postgres.host":           "DB_HOST",
	"postgres.port":           "DB_PORT",
	"postgres.user":           "DB_USERNAME",
	"postgres.password":       "DB_PASSWORD",
	"postgres.db_name":        "DB_NAME",
	"redis.host":              "REDIS_HOST",
	"redis.port":              "REDIS_PORT",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
}

// MustLoad loads the configuration from the environment (and a .env file, if present)
// and returns a Config struct. It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)
	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			panic("failed to bind environment variable " + env)
		}
	}

	interval, err := parseDuration(vpr.GetString("geocoder.interval"))
	if err != nil {
		panic("failed to parse geocoder interval from configuration")
	}

	timeout, err := parseDuration(vpr.GetString("backend.timeout"))
	if err != nil {
		panic("failed to parse backend timeout from configuration")
	}

	cacheTTL, err := parseDuration(vpr.GetString("cache_ttl"))
	if err != nil {
		panic("failed to parse cache ttl from configuration")
	}

	port, err := parseInt(vpr.GetString("port"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	workers, err := parseInt(vpr.GetString("geocoder.workers"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	pageSize, err := parseInt(vpr.GetString("page_size"))
	if err != nil || pageSize < 1 {
		panic("failed to parse page size from configuration, must be a positive integer")
	}

	rateLimit, err := parseInt(vpr.GetString("backend.rate_limit"))
	if err != nil {
		panic("failed to parse backend rate limit from configuration")
	}

	redisDB, err := parseInt(vpr.GetString("redis.db"))
	if err != nil {
		panic("failed to parse redis db from configuration")
	}

	return &Config{
		Env:  vpr.GetString("env"),
		Port: port,
		Backend: BackendConfig{
			URL:       strings.TrimRight(vpr.GetString("backend.url"), "/"),
			Timeout:   timeout,
			RateLimit: rateLimit,
		},
		SyncSchedule: vpr.GetString("sync_schedule"),
		Geocoder: GeocoderConfig{
			ProviderType: vpr.GetString("geocoder.provider_type"),
			APIKey:       vpr.GetString("geocoder.provider_key"),
			Workers:      workers,
			Interval:     interval,
			AddrPrefix:   vpr.GetString("geocoder.address_prefix"),
			Region:       vpr.GetString("geocoder.region"),
		},
		CacheTTL: cacheTTL,
		PageSize: pageSize,
		Database: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Name:     vpr.GetString("postgres.db_name"),
		},
		Redis: RedisConfig{
			Host:     vpr.GetString("redis.host"),
			Port:     vpr.GetString("redis.port"),
			Password: vpr.GetString("redis.password"),
			DB:       redisDB,
		},
	}
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", "8080")
	vpr.SetDefault("backend.url", "http://localhost:8080/api")
	vpr.SetDefault("backend.timeout", "10s")
	vpr.SetDefault("backend.rate_limit", "20")
	vpr.SetDefault("sync_schedule", "@every 5m")
	vpr.SetDefault("geocoder.provider_type", "nominatim")
	vpr.SetDefault("geocoder.workers", "2")
	vpr.SetDefault("geocoder.interval", "10m")
	vpr.SetDefault("cache_ttl", "2m")
	vpr.SetDefault("page_size", "9")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("redis.host", "localhost")
	vpr.SetDefault("redis.port", "6379")
	vpr.SetDefault("redis.db", "0")
}

func parseDuration(raw string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(raw))
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
