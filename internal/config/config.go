package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Secret backends understood by the token provider.
const (
	SecretsBackendGCP   = "gcp"
	SecretsBackendVault = "vault"
	SecretsBackendAWS   = "aws"
	SecretsBackendEnv   = "env"
)

// Document store backends understood by the visitor repository.
const (
	StoreBackendFirestore = "firestore"
	StoreBackendMongo     = "mongo"
	StoreBackendPostgres  = "postgres"
	StoreBackendRedis     = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Secrets  SecretsConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Metrics  MetricsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SecretsConfig selects where API tokens come from.
type SecretsConfig struct {
	Backend    string
	ProjectID  string
	SecretName string

	VaultAddr  string
	VaultToken string
	VaultMount string

	AWSRegion string

	// Used whenever the backend cannot be read.
	FallbackToken1 string
	FallbackToken2 string
}

// StoreConfig selects the document store holding visitor records.
type StoreConfig struct {
	Backend       string
	Collection    string
	ProjectID     string
	DatabaseID    string
	MongoURI      string
	MongoDatabase string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	projectID := getEnv("GOOGLE_CLOUD_PROJECT", "adagio-teas-visitor-ids")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "Adagio Visitor ID Lookup API"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", getEnv("APP_PORT", "8080")),
			Version:               getEnv("APP_VERSION", "1.0.0"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Secrets: SecretsConfig{
			Backend:        getEnv("SECRETS_BACKEND", SecretsBackendGCP),
			ProjectID:      projectID,
			SecretName:     getEnv("API_TOKENS_SECRET_NAME", "adagio-visitorid-fastapi-tokens"),
			VaultAddr:      getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultToken:     os.Getenv("VAULT_TOKEN"),
			VaultMount:     getEnv("VAULT_MOUNT", "secret"),
			AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
			FallbackToken1: getEnv("API_TOKEN_1", "sk_test_YOUR_TEST_TOKEN_HERE"),
			FallbackToken2: getEnv("API_TOKEN_2", "sk_live_YOUR_LIVE_TOKEN_HERE"),
		},
		Store: StoreConfig{
			Backend:       getEnv("STORE_BACKEND", StoreBackendFirestore),
			Collection:    getEnv("STORE_COLLECTION", "visitor_ids"),
			ProjectID:     projectID,
			DatabaseID:    getEnv("FIRESTORE_DATABASE", "(default)"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "adagio"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Secrets.Backend {
	case SecretsBackendGCP, SecretsBackendVault, SecretsBackendAWS, SecretsBackendEnv:
	default:
		return fmt.Errorf("invalid SECRETS_BACKEND %q", c.Secrets.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendFirestore, StoreBackendMongo, StoreBackendRedis:
	case StoreBackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for STORE_BACKEND=%s", StoreBackendPostgres)
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Store.Collection == "" {
		return fmt.Errorf("STORE_COLLECTION must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
