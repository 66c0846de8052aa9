package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the API server configuration.
type Config struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	BaseDir         string        `mapstructure:"base_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogFormat       string        `mapstructure:"log_format"` // "json" (default) or "text"
	LogLevel        string        `mapstructure:"log_level"`  // "debug", "info" (default), "warn", "error"
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`

	// CORSAllowedOrigins lists browser origins allowed to call the API;
	// empty disables CORS headers.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// Currency and Locale format prices in filter descriptions.
	Currency string `mapstructure:"currency"`
	Locale   string `mapstructure:"locale"`
}

// EnvPrefix prefixes every environment override, e.g. STARTERKIT_API_LISTEN_ADDR.
const EnvPrefix = "STARTERKIT_API"

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		BaseDir:         ".",
		ShutdownTimeout: 30 * time.Second,
		LogFormat:       "json",
		LogLevel:        "info",
		MaxBodyBytes:    1 << 20,
		Currency:        "$",
		Locale:          "en",
	}
}

// LoadConfig layers defaults, an optional config file and environment
// variables. The file is $STARTERKIT_API_CONFIG when set, otherwise
// .starterkit/api.{yaml,toml,json} if present.
func LoadConfig() (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("base_dir", def.BaseDir)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("max_body_bytes", def.MaxBodyBytes)
	v.SetDefault("cors_allowed_origins", []string{})
	v.SetDefault("currency", def.Currency)
	v.SetDefault("locale", def.Locale)

	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(".", ".starterkit"))
		v.SetConfigName("api")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.CORSAllowedOrigins = splitOrigins(c.CORSAllowedOrigins)
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = def.MaxBodyBytes
	}
	return c, nil
}

// splitOrigins flattens comma-separated entries and drops blanks, so env
// values like "a.com, b.com" work.
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
