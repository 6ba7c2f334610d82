package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/XTHN9RF/Foodify-API/auth"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type TokenKey struct {
	ID     string `yaml:"id"`
	Secret string `yaml:"secret"`
}

type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`

	AccessTokenKeys  []TokenKey    `yaml:"access_token_keys"`
	RefreshTokenKeys []TokenKey    `yaml:"refresh_token_keys"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"`

	AdminAPIKey string `yaml:"admin_api_key"`

	UploadsDir      string        `yaml:"uploads_dir"`
	BackupDir       string        `yaml:"backup_dir"`
	BackupRetention time.Duration `yaml:"backup_retention"`
	BackupHour      int           `yaml:"backup_hour"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	CookieSecure bool     `yaml:"cookie_secure"`
	CookieDomain string   `yaml:"cookie_domain"`
	AllowOrigins []string `yaml:"allow_origins"`
}

func Default() *Config {
	return &Config{
		Port:            "8080",
		AccessTokenTTL:  auth.DefaultAccessTTL,
		RefreshTokenTTL: auth.DefaultRefreshTTL,
		UploadsDir:      "./uploads",
		BackupRetention: 4 * 24 * time.Hour,
		BackupHour:      2,
		CookieSecure:    true,
		AllowOrigins:    []string{"*"},
	}
}

// Load reads defaults, then the YAML file at path (skipped when absent), then
// .env and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if c.DatabaseURL == "" && os.Getenv("DB_HOST") != "" {
		c.DatabaseURL = postgresURLFromEnv()
	}

	if v := os.Getenv("ACCESS_TOKEN_KEYS"); v != "" {
		keys, err := parseKeys(v)
		if err != nil {
			return fmt.Errorf("ACCESS_TOKEN_KEYS: %w", err)
		}
		c.AccessTokenKeys = keys
	}
	if v := os.Getenv("REFRESH_TOKEN_KEYS"); v != "" {
		keys, err := parseKeys(v)
		if err != nil {
			return fmt.Errorf("REFRESH_TOKEN_KEYS: %w", err)
		}
		c.RefreshTokenKeys = keys
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":  &c.AccessTokenTTL,
		"REFRESH_TOKEN_TTL": &c.RefreshTokenTTL,
		"BACKUP_RETENTION":  &c.BackupRetention,
	}
	for name, dst := range durations {
		if v := os.Getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"BACKUP_HOUR": &c.BackupHour,
		"REDIS_DB":    &c.RedisDB,
	}
	for name, dst := range ints {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"ADMIN_API_KEY":  &c.AdminAPIKey,
		"UPLOADS_DIR":    &c.UploadsDir,
		"BACKUP_DIR":     &c.BackupDir,
		"REDIS_ADDR":     &c.RedisAddr,
		"REDIS_PASSWORD": &c.RedisPassword,
		"COOKIE_DOMAIN":  &c.CookieDomain,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.AllowOrigins = splitList(v)
	}
	return nil
}

func postgresURLFromEnv() string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		port,
		os.Getenv("DB_NAME"),
	)
}

// parseKeys reads "id:secret,id:secret"; the first pair is the signing key.
func parseKeys(s string) ([]TokenKey, error) {
	var keys []TokenKey
	for _, part := range splitList(s) {
		id, secret, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected id:secret, got %q", part)
		}
		keys = append(keys, TokenKey{ID: strings.TrimSpace(id), Secret: strings.TrimSpace(secret)})
	}
	return keys, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if len(c.AccessTokenKeys) == 0 {
		return fmt.Errorf("access_token_keys is required")
	}
	if len(c.RefreshTokenKeys) == 0 {
		return fmt.Errorf("refresh_token_keys is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("refresh_token_ttl must not be shorter than access_token_ttl")
	}

	accessSecrets := make(map[string]bool)
	for _, k := range c.AccessTokenKeys {
		accessSecrets[k.Secret] = true
	}
	for _, k := range c.RefreshTokenKeys {
		if accessSecrets[k.Secret] {
			return fmt.Errorf("access and refresh tokens must not share a secret")
		}
	}

	if _, err := c.AccessKeySet(); err != nil {
		return fmt.Errorf("access_token_keys: %w", err)
	}
	if _, err := c.RefreshKeySet(); err != nil {
		return fmt.Errorf("refresh_token_keys: %w", err)
	}
	return nil
}

func (c *Config) AccessKeySet() (*auth.KeySet, error) {
	return keySet(c.AccessTokenKeys)
}

func (c *Config) RefreshKeySet() (*auth.KeySet, error) {
	return keySet(c.RefreshTokenKeys)
}

func keySet(keys []TokenKey) (*auth.KeySet, error) {
	out := make([]auth.Key, 0, len(keys))
	for _, k := range keys {
		out = append(out, auth.Key{ID: k.ID, Secret: []byte(k.Secret)})
	}
	return auth.NewKeySet(out...)
}

// TokenService builds the token service from the configured keys and lifetimes.
func (c *Config) TokenService() (*auth.TokenService, error) {
	access, err := c.AccessKeySet()
	if err != nil {
		return nil, err
	}
	refresh, err := c.RefreshKeySet()
	if err != nil {
		return nil, err
	}
	return auth.NewTokenService(auth.TokenConfig{
		AccessKeys:  access,
		RefreshKeys: refresh,
		AccessTTL:   c.AccessTokenTTL,
		RefreshTTL:  c.RefreshTokenTTL,
	})
}
