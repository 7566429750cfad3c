package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the settings read.
const EnvPrefix = "LUCENE_EXAMPLE"

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// Transport constants
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Log format constants
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// DataSettings says where records are loaded from.
type DataSettings struct {
	// Dir is a directory holding a profiles file and a shopping-lists
	// directory. Empty selects the records bundled with the binary.
	Dir string `mapstructure:"dir"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// QuerySettings configures how queries are answered.
type QuerySettings struct {
	StrictDates bool `mapstructure:"strict_dates"`
	MaxResults  int  `mapstructure:"max_results"` // 0 is unbounded
}

// IndexSettings configures indexing.
type IndexSettings struct {
	CommitEvery int `mapstructure:"commit_every"`
}

// RateLimitSettings throttles HTTP requests in SSE mode.
type RateLimitSettings struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables limiting
	Burst             int     `mapstructure:"burst"`
}

// Settings application settings
type Settings struct {
	Transport string            `mapstructure:"transport"`
	Host      string            `mapstructure:"host"`
	Port      int               `mapstructure:"port"`
	Auth      AuthSettings      `mapstructure:"auth"`
	Data      DataSettings      `mapstructure:"data"`
	Log       LogSettings       `mapstructure:"log"`
	Query     QuerySettings     `mapstructure:"query"`
	Index     IndexSettings     `mapstructure:"index"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
}

// flagKeys maps CLI flag names to settings keys.
var flagKeys = map[string]string{
	"transport":           "transport",
	"host":                "host",
	"port":                "port",
	"auth-type":           "auth.type",
	"auth-basic-username": "auth.basic.username",
	"auth-basic-password": "auth.basic.password",
	"auth-api-keys":       "auth.api_keys",
	"data-dir":            "data.dir",
	"log-level":           "log.level",
	"log-format":          "log.format",
	"strict-dates":        "query.strict_dates",
	"max-results":         "query.max_results",
	"commit-every":        "index.commit_every",
	"rate-limit":          "rate_limit.requests_per_second",
	"rate-burst":          "rate_limit.burst",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used. Flags missing from
// the set are skipped, so the root command can bind only its own.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("transport", TransportStdio)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)
	v.SetDefault("data.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatText)
	v.SetDefault("query.strict_dates", false)
	v.SetDefault("query.max_results", 0)
	v.SetDefault("index.commit_every", 1)
	v.SetDefault("rate_limit.requests_per_second", 0)
	v.SetDefault("rate_limit.burst", 10)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv on Unmarshal.
	for _, key := range flagKeys {
		_ = v.BindEnv(key, envName(key))
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// API keys given as one comma-separated env value
	if apiKeysEnv := os.Getenv(envName("auth.api_keys")); apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}
	settings.Auth.APIKeys = filterEmptyStrings(settings.Auth.APIKeys)

	settings.Data.Dir = expandHomeDir(settings.Data.Dir)
	settings.Log.Level = strings.ToLower(strings.TrimSpace(settings.Log.Level))
	settings.Log.Format = strings.ToLower(strings.TrimSpace(settings.Log.Format))

	return &settings, nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete auth config.
func ValidateSettings(s *Settings) error {
	switch s.Transport {
	case TransportStdio, TransportSSE:
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got: %d", s.Port)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	if _, err := ParseLevel(s.Log.Level); err != nil {
		return err
	}
	switch s.Log.Format {
	case LogFormatText, LogFormatJSON, "":
		// valid
	default:
		return errors.New("log-format must be 'text' or 'json', got: " + s.Log.Format)
	}

	if s.Query.MaxResults < 0 {
		return errors.New("max-results cannot be negative")
	}
	if s.Index.CommitEvery < 1 {
		return errors.New("commit-every must be positive")
	}
	if s.RateLimit.RequestsPerSecond < 0 {
		return errors.New("rate-limit cannot be negative")
	}
	if s.RateLimit.RequestsPerSecond > 0 && s.RateLimit.Burst < 1 {
		return errors.New("rate-burst must be positive when rate-limit is set")
	}

	return nil
}
