package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs user bearer tokens.
	SessionSecret string `env:"SESSION_SECRET, default=dev-secret"`

	FrontendURL string `env:"FRONTEND_URL, default=https://aistudent.zeabur.app"`
	APIBaseURL  string `env:"API_BASE_URL, default=https://aistudentbackend.zeabur.app"`

	AdminBootstrapUser     string `env:"ADMIN_BOOTSTRAP_USER,     default=admin"`
	AdminBootstrapPassword string `env:"ADMIN_BOOTSTRAP_PASSWORD, default=admin123"`

	// AuthTestMode enables the literal bypass token for test environments.
	// It is ignored when Env is production.
	AuthTestMode  bool   `env:"AUTH_TEST_MODE, default=false"`
	AuthTestToken string `env:"AUTH_TEST_TOKEN"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
	Google GoogleConfig
	LINE   LINEConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=aistudent"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

type LINEConfig struct {
	ChannelID     string `env:"LINE_CHANNEL_ID"`
	ChannelSecret string `env:"LINE_CHANNEL_SECRET"`
	ClientID      string `env:"LINE_CLIENT_ID"`
	ClientSecret  string `env:"LINE_CLIENT_SECRET"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TestBypassToken returns the configured bypass token, or "" when the bypass
// must stay disabled. Production always disables it.
func (c *Config) TestBypassToken() string {
	if !c.AuthTestMode || c.IsProduction() {
		return ""
	}
	return c.AuthTestToken
}

// Load reads configuration from environment variables using go-envconfig.
// Missing provider or AI credentials disable the feature instead of failing.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
