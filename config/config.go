package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	Search  SearchConfig  `mapstructure:"search"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server and auth settings
type ServerConfig struct {
	Address   string `mapstructure:"address"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// SearchConfig selects the collection strategy and the raw-search backends.
// Mode is "web" (search engines + page fetch) or "openai" (model-native
// browsing). PreferredEngine promotes a recognized engine ("google" or
// "duckduckgo") to the front of the orchestration order; unrecognized values
// leave the default order untouched.
type SearchConfig struct {
	Mode            string `mapstructure:"mode"`
	PreferredEngine string `mapstructure:"preferred_engine"`
	MaxResults      int    `mapstructure:"max_results"`
	SerperAPIKey    string `mapstructure:"serper_api_key"`
}

// FetchConfig controls the headless page fetcher
type FetchConfig struct {
	Type     string        `mapstructure:"type"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
}

// LLMConfig contains the OpenAI provider configuration
type LLMConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	ResearchModel string        `mapstructure:"research_model"`
	ArticleModel  string        `mapstructure:"article_model"`
	Temperature   float64       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres connection string, preferring an explicit URL.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (r RedisConfig) Addr() string {
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

// LoadConfig reads configuration from file and environment (GAZETA_* vars).
// A missing config file is fine; defaults plus environment apply.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":10002")
	viper.SetDefault("search.mode", "web")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("fetch.type", "chromedp")
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.max_chars", 20000)
	viper.SetDefault("llm.research_model", "gpt-4o-mini-search-preview")
	viper.SetDefault("llm.article_model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 4096)
	viper.SetDefault("llm.timeout", 120*time.Second)
	viper.SetDefault("storage.redis.cache_ttl", 6*time.Hour)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("GAZETA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	return &config
}
