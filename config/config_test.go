package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, name := range []string{
		"PORT", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"ACCESS_TOKEN_KEYS", "REFRESH_TOKEN_KEYS", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"ADMIN_API_KEY", "UPLOADS_DIR", "BACKUP_DIR", "BACKUP_RETENTION", "BACKUP_HOUR",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "COOKIE_SECURE", "COOKIE_DOMAIN", "ALLOW_ORIGINS",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "foodify.yml")

	content := `port: "9090"
database_url: sqlite://foodify.db
access_token_keys:
  - id: a2
    secret: access-new
  - id: a1
    secret: access-old
refresh_token_keys:
  - id: r1
    secret: refresh
access_token_ttl: 1h
refresh_token_ttl: 48h
admin_api_key: admin
cookie_secure: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got '%s'", cfg.Port)
	}
	if cfg.AccessTokenTTL != time.Hour || cfg.RefreshTokenTTL != 48*time.Hour {
		t.Errorf("Unexpected TTLs %v / %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.CookieSecure {
		t.Error("cookie_secure should be false")
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("Expected default uploads dir, got '%s'", cfg.UploadsDir)
	}

	ks, err := cfg.AccessKeySet()
	if err != nil {
		t.Fatalf("AccessKeySet failed: %v", err)
	}
	if ks.Current().ID != "a2" {
		t.Errorf("First key should sign, got '%s'", ks.Current().ID)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port, got '%s'", cfg.Port)
	}
	if cfg.AccessTokenTTL != 7*24*time.Hour || cfg.RefreshTokenTTL != 14*24*time.Hour {
		t.Errorf("Unexpected default TTLs %v / %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "foodify.yml")
	if err := os.WriteFile(configPath, []byte("port: \"9090\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("PORT", "7070")
	t.Setenv("ACCESS_TOKEN_KEYS", "k2:new, k1:old")
	t.Setenv("REFRESH_TOKEN_KEYS", "r1:refresh")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "foodify")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Expected env port, got '%s'", cfg.Port)
	}
	if len(cfg.AccessTokenKeys) != 2 || cfg.AccessTokenKeys[0].ID != "k2" || cfg.AccessTokenKeys[1].Secret != "old" {
		t.Errorf("Unexpected access keys %+v", cfg.AccessTokenKeys)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Errorf("Expected 30m access TTL, got %v", cfg.AccessTokenTTL)
	}
	if cfg.DatabaseURL != "postgres://foodify:pw@db:5432/shop?sslmode=disable" {
		t.Errorf("Unexpected database url '%s'", cfg.DatabaseURL)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Errorf("Expected two origins, got %v", cfg.AllowOrigins)
	}
}

func TestInvalidKeyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_KEYS", "no-colon")
	if _, err := Load(""); err == nil {
		t.Error("Malformed ACCESS_TOKEN_KEYS should error")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.DatabaseURL = "sqlite://test.db"
		cfg.AccessTokenKeys = []TokenKey{{ID: "a", Secret: "access"}}
		cfg.RefreshTokenKeys = []TokenKey{{ID: "r", Secret: "refresh"}}
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("Valid config should not error: %v", err)
	}

	cases := map[string]func(*Config){
		"missing database_url": func(c *Config) { c.DatabaseURL = "" },
		"missing access keys":  func(c *Config) { c.AccessTokenKeys = nil },
		"missing refresh keys": func(c *Config) { c.RefreshTokenKeys = nil },
		"shared secret":        func(c *Config) { c.RefreshTokenKeys[0].Secret = "access" },
		"empty secret":         func(c *Config) { c.AccessTokenKeys[0].Secret = "" },
		"duplicate key id": func(c *Config) {
			c.AccessTokenKeys = append(c.AccessTokenKeys, TokenKey{ID: "a", Secret: "other"})
		},
		"zero ttl":                    func(c *Config) { c.AccessTokenTTL = 0 },
		"refresh shorter than access": func(c *Config) { c.RefreshTokenTTL = time.Hour },
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestTokenServiceFromConfig(t *testing.T) {
	cfg := Default()
	cfg.AccessTokenKeys = []TokenKey{{ID: "a", Secret: "access"}}
	cfg.RefreshTokenKeys = []TokenKey{{ID: "r", Secret: "refresh"}}

	svc, err := cfg.TokenService()
	if err != nil {
		t.Fatalf("TokenService failed: %v", err)
	}
	token, _ := svc.IssueAccessToken(11)
	if id, err := svc.ValidateAccessToken(token); err != nil || id != 11 {
		t.Errorf("Expected user 11, got %d (%v)", id, err)
	}
}
