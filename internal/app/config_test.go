package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DB.Driver != "sqlite" || cfg.Tx.Isolation != "read_committed" {
		t.Fatalf("defaults: got=%+v", cfg)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
http_addr: ":9000"
cors_origins: ["https://registrar.example.edu"]
db:
  driver: postgres
  host: db.internal
  name: registrar
  seed: false
transaction:
  isolation: serializable
  timeout: 15s
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("POSTGRES_PASSWORD", "s3cret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":9100" {
		t.Fatalf("env must override file: want=%q got=%q", ":9100", cfg.HTTPAddr)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Seed || cfg.Tx.Isolation != "serializable" || cfg.Tx.Timeout != 15*time.Second {
		t.Fatalf("file values: got=%+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://registrar.example.edu" {
		t.Fatalf("cors origins: got=%v", cfg.CORSOrigins)
	}
	want := "host=db.internal port=5432 user=postgres password=s3cret dbname=registrar sslmode=disable"
	if got := cfg.DB.DSN(); got != want {
		t.Fatalf("dsn: want=%q got=%q", want, got)
	}
}

func TestLoadConfig_DatabaseURLWins(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/x")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DB.DSN() != "postgres://u:p@localhost/x" {
		t.Fatalf("dsn: got=%q", cfg.DB.DSN())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("TX_ISOLATION", "snapshot")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("want error for unknown driver and isolation")
	}
}
