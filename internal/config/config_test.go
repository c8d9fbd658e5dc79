package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearEnv blanks the overrides so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "SMTP_FROM", "CONTACT_NOTIFY_TO",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "FRONTEND_ORIGIN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFrom_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8081
  shutdown_timeout: 5s
database:
  url: postgres://localhost/portfolio?sslmode=disable
auth:
  jwt_secret: s3cret
  token_ttl: 12h
email:
  smtp_host: smtp.example.com
  from_email: site@example.com
telegram:
  bot_token: abc
  chat_id: 99
cors:
  frontend_origin: https://me.dev
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ShutdownTimeout) != 5*time.Second {
		t.Errorf("shutdown timeout = %v", time.Duration(cfg.Server.ShutdownTimeout))
	}
	if time.Duration(cfg.Auth.TokenTTL) != 12*time.Hour {
		t.Errorf("token ttl = %v", time.Duration(cfg.Auth.TokenTTL))
	}
	if cfg.Email.SMTPPort != 587 {
		t.Errorf("smtp port default = %d", cfg.Email.SMTPPort)
	}
	if !cfg.Email.Enabled() || !cfg.Telegram.Enabled() {
		t.Error("expected email and telegram to be enabled")
	}
	if cfg.CORS.FrontendOrigin != "https://me.dev" {
		t.Errorf("origin = %q", cfg.CORS.FrontendOrigin)
	}
}

func TestLoadFrom_MissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "9000")
	t.Setenv("TELEGRAM_CHAT_ID", "123")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Database.DSN != "postgres://env/db" || cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Telegram.ChatID != 123 {
		t.Errorf("chat id = %d", cfg.Telegram.ChatID)
	}
	if time.Duration(cfg.Auth.TokenTTL) != 24*time.Hour {
		t.Errorf("default token ttl = %v", time.Duration(cfg.Auth.TokenTTL))
	}
	if cfg.Telegram.Enabled() {
		t.Error("telegram without token must be disabled")
	}
}

func TestLoadFrom_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  url: postgres://file/db
auth:
  jwt_secret: file-secret
`)
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %q, want env value", cfg.Auth.JWTSecret)
	}
	if cfg.Database.DSN != "postgres://file/db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoadFrom_Validation(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 70000\n")
	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"database.url", "jwt_secret", "out of range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadFrom_BadDuration(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "auth:\n  token_ttl: soon\n")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error for bad duration")
	}
}
