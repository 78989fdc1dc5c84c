package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		StorageBackend: BackendSQLite,
		SQLiteDBPath:   "./data/test.db",
		JWTSecret:      "secret",
		TokenDuration:  time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErr  bool
		contains string
	}{
		{
			name:   "valid sqlite config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid postgres config",
			mutate: func(c *Config) {
				c.StorageBackend = BackendPostgres
				c.DatabaseURL = "postgres://localhost/splitr"
			},
		},
		{
			name:     "non-numeric port",
			mutate:   func(c *Config) { c.Port = "http" },
			wantErr:  true,
			contains: "port",
		},
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Port = "70000" },
			wantErr:  true,
			contains: "port",
		},
		{
			name:     "unknown backend",
			mutate:   func(c *Config) { c.StorageBackend = "mysql" },
			wantErr:  true,
			contains: "backend",
		},
		{
			name: "postgres without database url",
			mutate: func(c *Config) {
				c.StorageBackend = BackendPostgres
				c.DatabaseURL = ""
			},
			wantErr:  true,
			contains: "DATABASE_URL",
		},
		{
			name:     "missing jwt secret",
			mutate:   func(c *Config) { c.JWTSecret = "" },
			wantErr:  true,
			contains: "JWT_SECRET",
		},
		{
			name:     "non-positive token duration",
			mutate:   func(c *Config) { c.TokenDuration = 0 },
			wantErr:  true,
			contains: "TOKEN_DURATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

// Every problem is reported at once, not just the first.
func TestValidateAccumulates(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "bad"
	cfg.JWTSecret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "port") || !strings.Contains(msg, "JWT_SECRET") {
		t.Errorf("error %q should mention both problems", msg)
	}
}
