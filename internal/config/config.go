package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AI providers selectable with AI_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderNone   = "none"
)

// Store backends selectable with STORE.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the configuration for the application.
type Config struct {
	Port         int    `yaml:"port"`
	Store        string `yaml:"store"`
	DatabasePath string `yaml:"database_path"`
	SnapshotDir  string `yaml:"snapshot_dir"`
	CORSOrigins  string `yaml:"cors_origins"`

	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`

	AIProvider   string        `yaml:"ai_provider"`
	AITimeout    time.Duration `yaml:"ai_timeout"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	GeminiModel  string        `yaml:"gemini_model"`
	GroqAPIKey   string        `yaml:"groq_api_key"`
	GroqModel    string        `yaml:"groq_model"`

	// Telegram Config
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:         8080,
		Store:        StoreSQLite,
		DatabasePath: "./data/rooms.db",
		SnapshotDir:  "./data/snapshots",
		CORSOrigins:  "*",
		SessionTTL:   7 * 24 * time.Hour,
		AIProvider:   ProviderGemini,
		AITimeout:    20 * time.Second,
		GeminiModel:  "gemini-1.5-flash",
		GroqModel:    "llama-3.3-70b-versatile",
		LogLevel:     "info",
	}
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	return Load("")
}

// Load reads the optional YAML file at path, then applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	envOverrideInt(&c.Port, "PORT")
	envOverride(&c.Store, "STORE")
	envOverride(&c.DatabasePath, "DATABASE_PATH")
	envOverride(&c.SnapshotDir, "SNAPSHOT_DIR")
	envOverride(&c.CORSOrigins, "CORS_ORIGINS")
	envOverride(&c.SessionSecret, "SESSION_SECRET")
	envOverrideDuration(&c.SessionTTL, "SESSION_TTL")
	envOverride(&c.AIProvider, "AI_PROVIDER")
	envOverrideDuration(&c.AITimeout, "AI_TIMEOUT")
	envOverride(&c.GeminiAPIKey, "GEMINI_API_KEY")
	envOverride(&c.GeminiModel, "GEMINI_MODEL")
	envOverride(&c.GroqAPIKey, "GROQ_API_KEY")
	envOverride(&c.GroqModel, "GROQ_MODEL")
	envOverride(&c.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	envOverrideInt64(&c.TelegramChatID, "TELEGRAM_CHAT_ID")
	envOverride(&c.LogLevel, "LOG_LEVEL")
	envOverride(&c.LogFile, "LOG_FILE")

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	c.Store = strings.ToLower(c.Store)
	c.AIProvider = strings.ToLower(c.AIProvider)

	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET environment variable not set")
	}

	switch c.Store {
	case StoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH environment variable not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q: want sqlite or memory", c.Store)
	}

	switch c.AIProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q: want gemini, groq or none", c.AIProvider)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Origins splits CORS_ORIGINS into a list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TelegramEnabled reports whether finalized menus should be announced.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		} else {
			slog.Warn("ignoring invalid integer", "key", key, "value", v)
		}
	}
}

func envOverrideInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		} else {
			slog.Warn("ignoring invalid integer", "key", key, "value", v)
		}
	}
}

func envOverrideDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		} else {
			slog.Warn("ignoring invalid duration", "key", key, "value", v)
		}
	}
}
