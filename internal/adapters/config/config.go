package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Exchange  ExchangeConfig
	Sentiment SentimentConfig
	Trading   TradingConfig
	Health    HealthConfig
	Logging   LoggingConfig
}

// ExchangeConfig represents exchange connection parameters
type ExchangeConfig struct {
	APIKey  string `envconfig:"BINANCE_API_KEY" required:"false"`
	Secret  string `envconfig:"BINANCE_SECRET" required:"false"`
	Testnet bool   `envconfig:"BINANCE_TESTNET" default:"true"`
}

// SentimentConfig represents sentiment ingestion and aggregation parameters
type SentimentConfig struct {
	NewsPollInterval   time.Duration `envconfig:"NEWS_POLL_INTERVAL" default:"300s"`
	SocialPollInterval time.Duration `envconfig:"SOCIAL_POLL_INTERVAL" default:"600s"`
	DecayWindow        time.Duration `envconfig:"SENTIMENT_DECAY_WINDOW" default:"24h"`
	CacheTTL           time.Duration `envconfig:"SENTIMENT_CACHE_TTL" default:"30s"`

	// Per-source aggregation weights
	NewsWeight      float64 `envconfig:"SENTIMENT_NEWS_WEIGHT" default:"0.5"`
	ForumWeight     float64 `envconfig:"SENTIMENT_FORUM_WEIGHT" default:"0.3"`
	MicroblogWeight float64 `envconfig:"SENTIMENT_MICROBLOG_WEIGHT" default:"0.2"`

	NewsFeeds   []string `envconfig:"NEWS_FEEDS" default:"https://cointelegraph.com/rss,https://decrypt.co/feed,https://bitcoinmagazine.com/.rss/full/"`
	Subreddits  []string `envconfig:"REDDIT_SUBREDDITS" default:"CryptoCurrency,Bitcoin,ethtrader,CryptoMarkets"`
	NitterFeeds []string `envconfig:"NITTER_FEEDS" default:"https://nitter.net/cointelegraph/rss,https://nitter.net/coindesk/rss,https://nitter.net/documentingbtc/rss"`

	// LLM scorer; the keyword scorer is used when disabled
	OllamaEnabled bool   `envconfig:"OLLAMA_ENABLED" default:"false"`
	OllamaHost    string `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	OllamaModel   string `envconfig:"OLLAMA_MODEL" default:"llama3.1:8b"`
}

// TradingConfig represents trading and indicator parameters
type TradingConfig struct {
	Symbols       []string      `envconfig:"TRADING_SYMBOLS" default:"BTCUSDT,ETHUSDT,SOLUSDT"`
	RSIPeriod     int           `envconfig:"RSI_PERIOD" default:"14"`
	SymbolInfoTTL time.Duration `envconfig:"SYMBOL_INFO_TTL" default:"5m"`
}

// HealthConfig represents the health probe server configuration
type HealthConfig struct {
	Enabled bool   `envconfig:"HEALTH_ENABLED" default:"true"`
	Port    string `envconfig:"HEALTH_PORT" default:"8080"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Sentiment.NewsPollInterval <= 0 {
		return fmt.Errorf("news poll interval must be positive")
	}
	if c.Sentiment.SocialPollInterval <= 0 {
		return fmt.Errorf("social poll interval must be positive")
	}
	if c.Sentiment.DecayWindow <= 0 {
		return fmt.Errorf("sentiment decay window must be positive")
	}
	if c.Sentiment.CacheTTL <= 0 {
		return fmt.Errorf("sentiment cache TTL must be positive")
	}
	if c.Sentiment.NewsWeight <= 0 || c.Sentiment.ForumWeight <= 0 || c.Sentiment.MicroblogWeight <= 0 {
		return fmt.Errorf("source weights must be positive")
	}
	if c.Trading.RSIPeriod < 2 {
		return fmt.Errorf("RSI period must be at least 2")
	}
	if len(c.Trading.Symbols) == 0 {
		return fmt.Errorf("at least one trading symbol is required")
	}
	if c.Trading.SymbolInfoTTL <= 0 {
		return fmt.Errorf("symbol info TTL must be positive")
	}

	return nil
}

// HasExchangeKeys reports whether live exchange credentials are configured.
func (c *Config) HasExchangeKeys() bool {
	return c.Exchange.APIKey != "" && c.Exchange.Secret != ""
}
