package db

import (
	"fmt"
	stdlog "log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string `koanf:"driver"`
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	// SlowQuery is the threshold above which gorm logs a query as slow.
	SlowQuery time.Duration `koanf:"slow_query"`
}

// PostgresDSN builds a connection URL when no explicit DSN was configured.
func (c Config) PostgresDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	return u.String()
}

type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

func Open(log *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := log.With("service", "DatabaseService")

	slow := cfg.SlowQuery
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "", DriverPostgres:
		driver = DriverPostgres
		conn, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "troov.db"
		}
		conn, err = gorm.Open(sqlite.Open(dsn), gcfg)
		if err == nil {
			// sqlite serialises writers; a single connection also keeps
			// in-memory databases visible to every query.
			if sqlDB, dbErr := conn.DB(); dbErr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	serviceLog.Info("database connected", "driver", driver, "host", cfg.Host, "name", cfg.Name)
	return &Service{db: conn, log: serviceLog, driver: driver}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
