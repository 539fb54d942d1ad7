package config

import (
	"testing"
	"time"

	sqldriver "github.com/go-sql-driver/mysql"
)

func TestDsnFromEnv(t *testing.T) {
	cases := []struct {
		name     string
		host     string
		port     string
		wantNet  string
		wantAddr string
	}{
		{"tcp", "10.0.0.5", "3306", "tcp", "10.0.0.5:3306"},
		{"cloud sql socket", "/cloudsql/proj:region:inst", "", "unix", "/cloudsql/proj:region:inst"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_USER", "surveillance")
			t.Setenv("DB_PASSWORD", "p@ss:word")
			t.Setenv("DB_NAME", "ksar")
			t.Setenv("DB_HOST", tc.host)
			t.Setenv("DB_PORT", tc.port)

			cfg, err := sqldriver.ParseDSN(dsnFromEnv())
			if err != nil {
				t.Fatalf("dsn does not parse: %v", err)
			}
			if cfg.Net != tc.wantNet || cfg.Addr != tc.wantAddr {
				t.Fatalf("got %s(%s), want %s(%s)", cfg.Net, cfg.Addr, tc.wantNet, tc.wantAddr)
			}
			if cfg.User != "surveillance" || cfg.Passwd != "p@ss:word" || cfg.DBName != "ksar" {
				t.Fatalf("credentials not carried: %+v", cfg)
			}
			if !cfg.ParseTime || cfg.Loc != time.UTC {
				t.Fatalf("expected parseTime in UTC, got parseTime=%v loc=%v", cfg.ParseTime, cfg.Loc)
			}
		})
	}
}

func TestBackoffIsCapped(t *testing.T) {
	if got := backoff(1); got != 2*time.Second {
		t.Fatalf("attempt 1: %s", got)
	}
	if got := backoff(10); got != 30*time.Second {
		t.Fatalf("attempt 10: %s", got)
	}
}
