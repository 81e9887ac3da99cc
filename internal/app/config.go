package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/troovstudio/troov-backend/internal/data/db"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/billing"
	"github.com/troovstudio/troov-backend/internal/platform/gcs"
	"github.com/troovstudio/troov-backend/internal/platform/sendgrid"
	"github.com/troovstudio/troov-backend/internal/realtime/bus"
)

const (
	envPrefix         = "TROOV_"
	maxConfigFileSize = 1 << 20
)

type Config struct {
	Log struct {
		Mode     string `koanf:"mode"`
		HashSalt string `koanf:"hash_salt"`
	} `koanf:"log"`
	HTTP struct {
		Addr            string        `koanf:"addr"`
		CORSOrigins     []string      `koanf:"cors_origins"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`
	DB   db.Config `koanf:"db"`
	Auth struct {
		JWTSecret string `koanf:"jwt_secret"`
	} `koanf:"auth"`
	App struct {
		URL string `koanf:"url"`
	} `koanf:"app"`
	Autosave struct {
		Debounce     time.Duration `koanf:"debounce"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
	} `koanf:"autosave"`
	Deadline struct {
		Enabled  bool          `koanf:"enabled"`
		Interval time.Duration `koanf:"interval"`
	} `koanf:"deadline"`
	Cron struct {
		Secret string `koanf:"secret"`
	} `koanf:"cron"`
	Tracker struct {
		IdleTTL time.Duration `koanf:"idle_ttl"`
	} `koanf:"tracker"`
	Realtime struct {
		Heartbeat time.Duration `koanf:"heartbeat"`
	} `koanf:"realtime"`
	Redis    bus.RedisConfig `koanf:"redis"`
	SendGrid sendgrid.Config `koanf:"sendgrid"`
	Support  struct {
		InboxEmail string `koanf:"inbox_email"`
	} `koanf:"support"`
	Stripe  billing.Config           `koanf:"stripe"`
	GCS     gcs.Config               `koanf:"gcs"`
	Otel    observability.OtelConfig `koanf:"otel"`
	Metrics struct {
		Enabled bool `koanf:"enabled"`
	} `koanf:"metrics"`
}

func defaults() map[string]any {
	return map[string]any{
		"log.mode":               "production",
		"http.addr":              ":8080",
		"http.shutdown_timeout":  "15s",
		"db.driver":              db.DriverPostgres,
		"db.host":                "localhost",
		"db.port":                "5432",
		"db.sslmode":             "disable",
		"autosave.debounce":      "500ms",
		"autosave.write_timeout": "10s",
		"deadline.enabled":       true,
		"deadline.interval":      "1h",
		"tracker.idle_ttl":       "15m",
		"realtime.heartbeat":     "25s",
		"metrics.enabled":        true,
		"otel.service_name":      "troov-backend",
		"sendgrid.from_name":     "Troov Studio",
	}
}

// LoadConfig layers defaults, an optional YAML file and TROOV_ environment
// variables, in that order. A double underscore in a variable name nests:
// TROOV_DB__DSN sets db.dsn.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.HTTP.CORSOrigins = splitList(cfg.HTTP.CORSOrigins...)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// splitList flattens comma separated entries, as env values arrive as one string.
func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	return content, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("db.driver %q is not supported", c.DB.Driver))
	}
	if c.Autosave.Debounce < 0 {
		errs = append(errs, errors.New("autosave.debounce must not be negative"))
	}
	if c.Deadline.Enabled && c.Deadline.Interval < time.Minute {
		errs = append(errs, errors.New("deadline.interval must be at least 1m"))
	}
	return errors.Join(errs...)
}

// Summary lists the effective non-secret settings for the startup log.
func (c Config) Summary() []any {
	return []any{
		"log_mode", c.Log.Mode,
		"http_addr", c.HTTP.Addr,
		"db_driver", c.DB.Driver,
		"db_host", c.DB.Host,
		"db_name", c.DB.Name,
		"autosave_debounce", c.Autosave.Debounce.String(),
		"deadline_enabled", c.Deadline.Enabled,
		"deadline_interval", c.Deadline.Interval.String(),
		"tracker_idle_ttl", c.Tracker.IdleTTL.String(),
		"redis", c.Redis.Enabled(),
		"sendgrid", c.SendGrid.Configured(),
		"stripe", c.Stripe.Configured(),
		"gcs", c.GCS.Configured(),
		"otel", c.Otel.Enabled,
		"metrics", c.Metrics.Enabled,
	}
}
