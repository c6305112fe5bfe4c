package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "SITE_NAME", "EMAIL_HOST", "EMAIL_PORT", "EMAIL_USE_TLS", "EMAIL_TIMEOUT", "TRUSTED_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Email.Port != 587 || !cfg.Email.UseTLS || cfg.Email.Timeout != 10*time.Second {
		t.Errorf("unexpected email defaults %+v", cfg.Email)
	}
	if cfg.Email.Host != "" {
		t.Errorf("Email.Host = %q, want empty", cfg.Email.Host)
	}
	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
}

func TestParse_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DATABASE_URL", "sqlite:///tmp/contacts.db")
	t.Setenv("SITE_NAME", "Ann's Portfolio")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_HOST_USER", "ann")
	t.Setenv("EMAIL_HOST_PASSWORD", "secret")
	t.Setenv("EMAIL_USE_TLS", "false")
	t.Setenv("EMAIL_TIMEOUT", "3s")
	t.Setenv("DEFAULT_FROM_EMAIL", "site@example.com")
	t.Setenv("CONTACT_EMAIL_RECIPIENT", "ann@example.com")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DatabaseURL != "sqlite:///tmp/contacts.db" || cfg.SiteName != "Ann's Portfolio" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.TrustedOrigins) != 2 || cfg.TrustedOrigins[1] != "https://b.example.com" {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
	want := Email{Host: "smtp.example.com", Port: 465, User: "ann", Password: "secret", UseTLS: false, Timeout: 3 * time.Second}
	if cfg.Email != want {
		t.Errorf("Email = %+v, want %+v", cfg.Email, want)
	}
	if cfg.DefaultFromEmail != "site@example.com" || cfg.ContactEmailRecipient != "ann@example.com" {
		t.Errorf("unexpected addresses %q %q", cfg.DefaultFromEmail, cfg.ContactEmailRecipient)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "EMAIL_PORT", "smtp"},
		{"port out of range", "EMAIL_PORT", "70000"},
		{"bad duration", "EMAIL_TIMEOUT", "soon"},
		{"zero timeout", "EMAIL_TIMEOUT", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Parse(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestFlashKey(t *testing.T) {
	cfg := &Config{}
	a, err := cfg.FlashKey()
	if err != nil || len(a) != 32 {
		t.Fatalf("random key: len=%d err=%v", len(a), err)
	}
	b, _ := cfg.FlashKey()
	if string(a) == string(b) {
		t.Error("expected a fresh random key per call")
	}

	cfg.FlashHashKey = strings.Repeat("ab", 32)
	key, err := cfg.FlashKey()
	if err != nil || len(key) != 32 || key[0] != 0xab {
		t.Errorf("hex key: %x err=%v", key, err)
	}

	cfg.FlashHashKey = "zz"
	if _, err := cfg.FlashKey(); err == nil {
		t.Error("expected error for non-hex key")
	}
	cfg.FlashHashKey = "abcd"
	if _, err := cfg.FlashKey(); err == nil {
		t.Error("expected error for short key")
	}
}

func TestLoad_DotEnvFileDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/.env"
	if err := os.WriteFile(path, []byte("SITE_NAME=From File\nADDR=:7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADDR", ":9000")
	t.Setenv("SITE_NAME", "")
	os.Unsetenv("SITE_NAME")

	cfg, err := Load(dir+"/missing.env", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteName != "From File" {
		t.Errorf("SiteName = %q, want value from .env", cfg.SiteName)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want environment to win", cfg.Addr)
	}
}
