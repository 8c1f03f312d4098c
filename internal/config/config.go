// Package config loads the service configuration from a TOML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// Config is the effective service configuration.
type Config struct {
	Addr             string     `toml:"addr"`
	WebDir           string     `toml:"web_dir"`
	DatabaseURL      string     `toml:"database_url"`
	LogLevel         string     `toml:"log_level"`
	LogJSON          bool       `toml:"log_json"`
	Timezone         string     `toml:"timezone"`
	SessionTTL       Duration   `toml:"session_ttl"`
	TrustForwardAuth bool       `toml:"trust_forward_auth"`
	DisableAuth      bool       `toml:"disable_auth"`
	OIDC             OIDCConfig `toml:"oidc"`
}

// OIDCConfig maps the [oidc] table. SSO is enabled when Issuer is set.
type OIDCConfig struct {
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// Enabled reports whether enough is configured to talk to a provider.
func (o OIDCConfig) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

// Duration decodes TOML strings such as "12h" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:       ":8080",
		WebDir:     "web",
		LogLevel:   "info",
		Timezone:   "UTC",
		SessionTTL: Duration{24 * time.Hour},
	}
}

// Load reads the TOML file at path on top of Default and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("failed to stat config: %w", err)
			}
		} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("ADDR", &c.Addr)
	str("WEB_DIR", &c.WebDir)
	str("DATABASE_URL", &c.DatabaseURL)
	str("LOG_LEVEL", &c.LogLevel)
	str("TIMEZONE", &c.Timezone)
	str("OIDC_ISSUER", &c.OIDC.Issuer)
	str("OIDC_CLIENT_ID", &c.OIDC.ClientID)
	str("OIDC_CLIENT_SECRET", &c.OIDC.ClientSecret)
	str("OIDC_REDIRECT_URL", &c.OIDC.RedirectURL)

	for key, dst := range map[string]*bool{
		"LOG_JSON":           &c.LogJSON,
		"TRUST_FORWARD_AUTH": &c.TrustForwardAuth,
		"DISABLE_AUTH":       &c.DisableAuth,
	} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}

	if v, ok := lookup("SESSION_TTL"); ok && v != "" {
		if err := c.SessionTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
	}
	return nil
}

// Location resolves Timezone. It decides which calendar day is "today".
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
