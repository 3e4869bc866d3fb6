package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	dbpkg "github.com/yungbote/university-backend/internal/data/db"
	"github.com/yungbote/university-backend/internal/data/uow"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" yaml:"http_addr"`
	MetricsAddr   string        `env:"METRICS_ADDR" yaml:"metrics_addr"`
	LogMode       string        `env:"LOG_MODE" yaml:"log_mode"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" yaml:"shutdown_grace"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:"," yaml:"cors_origins"`

	DB   DBConfig   `yaml:"db"`
	Tx   TxConfig   `yaml:"transaction"`
	Otel OtelConfig `yaml:"otel"`
}

type DBConfig struct {
	Driver          string        `env:"DB_DRIVER" yaml:"driver"`
	URL             string        `env:"DATABASE_URL" yaml:"url"`
	Host            string        `env:"POSTGRES_HOST" yaml:"host"`
	Port            int           `env:"POSTGRES_PORT" yaml:"port"`
	User            string        `env:"POSTGRES_USER" yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Name            string        `env:"POSTGRES_NAME" yaml:"name"`
	SSLMode         string        `env:"POSTGRES_SSLMODE" yaml:"sslmode"`
	SQLitePath      string        `env:"SQLITE_PATH" yaml:"sqlite_path"`
	Seed            bool          `env:"DB_SEED" yaml:"seed"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" yaml:"conn_max_lifetime"`
	SlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD" yaml:"slow_threshold"`
	LogLevel        string        `env:"DB_LOG_LEVEL" yaml:"log_level"`
}

type TxConfig struct {
	Isolation      string        `env:"TX_ISOLATION" yaml:"isolation"`
	Timeout        time.Duration `env:"TX_TIMEOUT" yaml:"timeout"`
	CleanupTimeout time.Duration `env:"TX_CLEANUP_TIMEOUT" yaml:"cleanup_timeout"`
}

type OtelConfig struct {
	Enabled     bool              `env:"OTEL_ENABLED" yaml:"enabled"`
	ServiceName string            `env:"OTEL_SERVICE_NAME" yaml:"service_name"`
	Environment string            `env:"OTEL_ENVIRONMENT" yaml:"environment"`
	Endpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"endpoint"`
	Headers     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"=" yaml:"headers"`
	Insecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" yaml:"insecure"`
	SampleRatio float64           `env:"OTEL_SAMPLE_RATIO" yaml:"sample_ratio"`
}

func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		LogMode:       "development",
		ShutdownGrace: 10 * time.Second,
		DB: DBConfig{
			Driver:        dbpkg.DriverSQLite,
			Host:          "localhost",
			Port:          5432,
			User:          "postgres",
			Name:          "university",
			SSLMode:       "disable",
			SQLitePath:    "data/university.db",
			Seed:          true,
			MaxOpenConns:  20,
			MaxIdleConns:  10,
			SlowThreshold: time.Second,
			LogLevel:      "warn",
		},
		Tx: TxConfig{
			Isolation:      string(uow.ReadCommitted),
			Timeout:        30 * time.Second,
			CleanupTimeout: 5 * time.Second,
		},
		Otel: OtelConfig{
			ServiceName: "university",
			Environment: "dev",
			SampleRatio: 1,
		},
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file named by
// CONFIG_FILE when set, then the environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case dbpkg.DriverPostgres, dbpkg.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", dbpkg.DriverPostgres, dbpkg.DriverSQLite, c.DB.Driver))
	}
	if _, err := uow.ParseIsolationLevel(c.Tx.Isolation); err != nil {
		errs = append(errs, fmt.Errorf("TX_ISOLATION: %w", err))
	}
	if c.Tx.Timeout < 0 {
		errs = append(errs, errors.New("TX_TIMEOUT must not be negative"))
	}
	return errors.Join(errs...)
}

// DSN is DATABASE_URL when set, otherwise built from the POSTGRES_* keys.
func (c DBConfig) DSN() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		return u
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c DBConfig) database() dbpkg.Config {
	return dbpkg.Config{
		Driver:          c.Driver,
		DSN:             c.DSN(),
		SQLitePath:      c.SQLitePath,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		SlowThreshold:   c.SlowThreshold,
		LogLevel:        c.LogLevel,
	}
}
