package testutil

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/troovstudio/troov-backend/internal/data/db"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a freshly migrated database private to the test. It points at
// TEST_POSTGRES_DSN when set and an in-memory sqlite database otherwise.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := dbpkg.Config{Driver: dbpkg.DriverSQLite}
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		cfg = dbpkg.Config{Driver: dbpkg.DriverPostgres, DSN: dsn}
	} else {
		cfg.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	}

	svc, err := dbpkg.Open(Logger(tb), cfg)
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		if cfg.Driver == dbpkg.DriverPostgres {
			truncateAll(svc.DB())
		}
		_ = svc.Close()
	})
	return svc.DB()
}

func truncateAll(db *gorm.DB) {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range dbpkg.Models() {
		_ = all.Delete(m).Error
	}
}
