package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, saga windows)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Webhook WebhookConfig
	Saga    SagaConfig
	Stores  StoresConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// Every error response is sent as 500, matching the status scheme older clients expect.
	LegacyErrorStatus bool `envconfig:"HTTP_LEGACY_ERROR_STATUS" default:"false"`
}

type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	DBName      string `envconfig:"DB_NAME" required:"true"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"UTC"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type WebhookConfig struct {
	Secret string `envconfig:"WEBHOOK_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"WEBHOOK_JWT_ISSUER" default:"commerce-webhooks"`
}

type SagaConfig struct {
	PaymentWindow      time.Duration `envconfig:"SAGA_PAYMENT_WINDOW" default:"72h"`
	ProtectedProvinces []string      `envconfig:"SAGA_PROTECTED_PROVINCES" default:"CALIFORNIA"`
	ReaperMaxRetries   int           `envconfig:"REAPER_MAX_RETRIES" default:"5"`
	ReaperLockTTL      time.Duration `envconfig:"REAPER_LOCK_TTL" default:"10m"`
	// Zero leaves scheduling to an external runner of `saga-ops reap --all`.
	ReaperInterval  time.Duration `envconfig:"REAPER_INTERVAL" default:"1h"`
	ExternalTimeout time.Duration `envconfig:"EXTERNAL_CALL_TIMEOUT" default:"15s"`
	AlertChannel    string        `envconfig:"ALERT_CHANNEL" default:"alerts:cancellation"`
	NotifyChannel   string        `envconfig:"NOTIFY_CHANNEL" default:"notifications:cancellation"`
}

type StoresConfig struct {
	File string `envconfig:"STORES_FILE" default:"stores.yaml"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// BuildMigrateURL returns the DSN in the scheme golang-migrate's pgx/v5 driver registers.
func (c *DBConfig) BuildMigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Webhook: WebhookConfig{
			Secret: "test-webhook-secret",
			Issuer: "commerce-webhooks",
		},
		Saga: SagaConfig{
			PaymentWindow:      72 * time.Hour,
			ProtectedProvinces: []string{"CALIFORNIA"},
			ReaperMaxRetries:   5,
			ReaperLockTTL:      10 * time.Minute,
			ReaperInterval:     0,
			ExternalTimeout:    5 * time.Second,
			AlertChannel:       "alerts:cancellation",
			NotifyChannel:      "notifications:cancellation",
		},
	}
}
