package db

import "testing"

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "troov", Password: "p@ss", Name: "troov"}
	want := "postgres://troov:p%40ss@db:5432/troov?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("want=%s got=%s", want, got)
	}
	cfg.DSN = "postgres://explicit"
	if got := cfg.PostgresDSN(); got != "postgres://explicit" {
		t.Fatalf("explicit DSN should win, got=%s", got)
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	svc, err := Open(testLogger(t), Config{Driver: DriverSQLite, DSN: "file::memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()
	if svc.Driver() != DriverSQLite {
		t.Fatalf("driver: want=%s got=%s", DriverSQLite, svc.Driver())
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"projects", "project_overview", "section_completion_overrides", "deadline_notification_log"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(testLogger(t), Config{Driver: "mysql"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
