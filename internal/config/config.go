// Package config loads application settings from defaults, an optional
// YAML file, a .env file and SKILLNAV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. SKILLNAV_LLM_PROVIDER.
const EnvPrefix = "SKILLNAV"

// Config is the full application configuration.
type Config struct {
	DB     string       `mapstructure:"db"`
	Locale string       `mapstructure:"locale"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Share  ShareConfig  `mapstructure:"share"`
	Export ExportConfig `mapstructure:"export"`
}

// LogConfig configures the log sink.
type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Stderr bool   `mapstructure:"stderr"`
}

// ProviderConfig holds one LLM provider's credentials and model.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig is the llm.* section. An empty Provider selects the first
// provider whose API key is found in the standard environment variables.
type LLMConfig struct {
	Provider   string         `mapstructure:"provider"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Retry      struct {
		MaxAttempts int `mapstructure:"max_attempts"`
	} `mapstructure:"retry"`
	RateLimit struct {
		PerMinute int `mapstructure:"per_minute"`
		Burst     int `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

// ShareConfig configures publishing and the share server.
type ShareConfig struct {
	// BaseURL is a remote share server. Empty means pathways are
	// published to the local database.
	BaseURL        string   `mapstructure:"base_url"`
	Listen         string   `mapstructure:"listen"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RatePerMinute  int      `mapstructure:"rate_per_minute"`
}

// ExportConfig configures Markdown downloads.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config file. When empty the default location is
	// used if it exists.
	File string
	// EnvFile is a dotenv file. When empty ".env" in the working
	// directory is loaded if present.
	EnvFile string
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("locale", "en")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.stderr", false)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.rate_limit.per_minute", d.RateLimit.PerMinute)
	v.SetDefault("llm.rate_limit.burst", d.RateLimit.Burst)

	v.SetDefault("share.base_url", "")
	v.SetDefault("share.listen", ":8080")
	v.SetDefault("share.allowed_origins", []string{"*"})
	v.SetDefault("share.rate_per_minute", 120)

	v.SetDefault("export.dir", "")
}

// Load reads the configuration. Precedence from lowest to highest:
// defaults, config file, .env file, process environment.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := opts.File
	if file == "" {
		if p, err := DefaultPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				file = p
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads a dotenv file without overriding variables that are
// already set. A missing default file is fine; a missing explicit one is not.
func loadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if !i18n.IsSupported(c.Locale) {
		return fmt.Errorf("locale %q is not supported", c.Locale)
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "gemini", "openrouter", "mock":
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// LLMProvider converts the llm section into provider settings. ok is false
// when no provider has credentials, in which case AI features are
// unavailable.
func (c *Config) LLMProvider() (cfg llm.Config, ok bool) {
	cfg = llm.DefaultConfig()
	s := c.LLM

	cfg.Anthropic = llm.AnthropicConfig{APIKey: s.Anthropic.APIKey, Model: s.Anthropic.Model, BaseURL: s.Anthropic.BaseURL}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: s.OpenAI.APIKey, Model: s.OpenAI.Model, BaseURL: s.OpenAI.BaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: s.Gemini.APIKey, Model: s.Gemini.Model, BaseURL: s.Gemini.BaseURL}
	cfg.OpenRouter = llm.OpenRouterConfig{APIKey: s.OpenRouter.APIKey, Model: s.OpenRouter.Model, BaseURL: s.OpenRouter.BaseURL}
	cfg.Timeout = s.Timeout
	cfg.Retry.MaxAttempts = s.Retry.MaxAttempts
	cfg.RateLimit = llm.RateLimitConfig{PerMinute: s.RateLimit.PerMinute, Burst: s.RateLimit.Burst}

	if s.Provider != "" {
		cfg.Provider = s.Provider
		return cfg, cfg.HasKey()
	}
	for _, p := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		cfg.Provider = p
		if cfg.HasKey() {
			return cfg, true
		}
	}
	cfg.Provider = llm.DefaultConfig().Provider
	return llm.DiscoverConfig(cfg)
}

// DefaultPath returns $XDG_CONFIG_HOME/skillnav/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "skillnav", "config.yaml"), nil
}

// LogPath returns the configured log file, defaulting to
// $XDG_STATE_HOME/skillnav/skillnav.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "skillnav", "skillnav.log"), nil
}

// ExportDir returns the directory Markdown downloads are written to,
// defaulting to the working directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
