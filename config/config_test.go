package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("expected mongo driver, got %q", cfg.StoreDriver)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %v", cfg.JWTTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreDriver: DriverMemory,
		JWTSecret:   "secret",
		JWTTTL:      time.Hour,
		BcryptCost:  10,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "postgres" }, wantErr: "unknown STORE_DRIVER"},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "low cost", mutate: func(c *Config) { c.BcryptCost = 4 }, wantErr: "BCRYPT_COST"},
		{name: "firestore without project", mutate: func(c *Config) { c.StoreDriver = DriverFirestore }, wantErr: "FIREBASE_PROJECT_ID"},
		{name: "mongo without uri", mutate: func(c *Config) { c.StoreDriver = DriverMongo }, wantErr: "MONGODB_URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCaptchaEnabled(t *testing.T) {
	cfg := Config{RecaptchaProjectID: "proj"}
	if cfg.CaptchaEnabled() {
		t.Fatal("captcha should need both project and site key")
	}
	cfg.RecaptchaSiteKey = "key"
	if !cfg.CaptchaEnabled() {
		t.Fatal("expected captcha enabled")
	}
}
