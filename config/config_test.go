package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DEPOSIT_CHECKIN_OVERRIDE", "true")
	t.Setenv("DASHBOARD_CACHE_TTL", "90s")
	t.Setenv("JWT_EXPIRY_MINUTES", "30")
	t.Setenv("CORS_ORIGINS", "https://a.vn, https://b.vn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.StoreDriver != "memory" || !cfg.DepositCheckInOverride {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DashboardCacheTTL != 90*time.Second || cfg.TokenExpiry() != 30*time.Minute {
		t.Fatalf("durations = %v %v", cfg.DashboardCacheTTL, cfg.TokenExpiry())
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[1] != "https://b.vn" {
		t.Fatalf("origins = %v", got)
	}
	if cfg.StorageDriver != "local" || cfg.MaxUploadSize() != 10<<20 {
		t.Fatalf("defaults = %s %d", cfg.StorageDriver, cfg.MaxUploadSize())
	}
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "s", StoreDriver: "postgres", StorageDriver: "local"}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := map[string]func(c *Config){
		"missing secret":       func(c *Config) { c.JWTSecret = " " },
		"unknown store":        func(c *Config) { c.StoreDriver = "mysql" },
		"unknown storage":      func(c *Config) { c.StorageDriver = "s3" },
		"cloudinary needs url": func(c *Config) { c.StorageDriver = "cloudinary" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "homestay", DBPort: "5432", DBSSLMode: "disable", DBTimezone: "Asia/Ho_Chi_Minh"}
	want := "host=db user=u password=p dbname=homestay port=5432 sslmode=disable TimeZone=Asia/Ho_Chi_Minh"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN = %q", got)
	}
	c.DatabaseURL = "postgres://x"
	if c.DSN() != "postgres://x" {
		t.Fatalf("DATABASE_URL not preferred")
	}
}
