package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	LLM     LLMConfig
	Upload  UploadConfig
	Session SessionConfig
	Redis   RedisConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects and configures the generative model client.
// Provider is one of "openai", "ollama", "anthropic" or "gemini".
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	ServerURL   string
	Temperature float64
	Timeout     time.Duration
}

type UploadConfig struct {
	MaxBytes     int
	SniffContent bool
}

// SessionConfig selects where quiz sessions live while a quiz is being taken.
// Store is "memory" or "redis".
type SessionConfig struct {
	Store string
	TTL   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 60)
	viper.SetDefault("server.write_timeout", 120)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.server_url", "http://localhost:11434")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.timeout", 0)

	viper.SetDefault("upload.max_bytes", 10*1024*1024)
	viper.SetDefault("upload.sniff_content", false)

	viper.SetDefault("session.store", "memory")
	viper.SetDefault("session.ttl", "1h")

	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
}

func LoadConfig() (*Config, error) {
	// .env is optional; it usually only carries the model API key.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(viper.GetString("llm.provider")),
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			ServerURL:   viper.GetString("llm.server_url"),
			Temperature: viper.GetFloat64("llm.temperature"),
			Timeout:     time.Duration(viper.GetInt("llm.timeout")) * time.Second,
		},
		Upload: UploadConfig{
			MaxBytes:     viper.GetInt("upload.max_bytes"),
			SniffContent: viper.GetBool("upload.sniff_content"),
		},
		Session: SessionConfig{
			Store: strings.ToLower(viper.GetString("session.store")),
			TTL:   viper.GetString("session.ttl"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
	}

	// Provider-specific secrets win when the generic key is not set
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = providerAPIKey(config.LLM.Provider)
	}
	if env := os.Getenv("ENV"); env != "" && os.Getenv("LOGGER_ENV") == "" {
		config.Logger.Env = env
	}

	return config, nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "anthropic", "gemini":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider)
		}
	case "ollama":
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %q", c.LLM.Provider)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session.store: %q", c.Session.Store)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration string such as "30m", falling back on error or empty input.
func (c *Config) ParseTTLStringOrDefault(ttl string, defaultTTL time.Duration) time.Duration {
	if ttl == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttl)
	if err != nil || d < 0 {
		return defaultTTL
	}
	return d
}
