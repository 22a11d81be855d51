package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	Kafka    KafkaConfig
	Exchange ExchangeConfig
	LLM      LLMConfig

	PopularInterval time.Duration `envconfig:"POPULAR_INTERVAL" default:"5m"`
}

type KafkaConfig struct {
	Brokers        []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	ExchangeTopic  string   `envconfig:"EXCHANGE_KAFKA_TOPIC" default:"exchange-updates"`
	ItineraryTopic string   `envconfig:"ITINERARY_KAFKA_TOPIC" default:"itinerary-events"`
	UserTopic      string   `envconfig:"USER_KAFKA_TOPIC" default:"user-events"`
	PopularTopic   string   `envconfig:"POPULAR_KAFKA_TOPIC" default:"popular-requests"`
}

type ExchangeConfig struct {
	APIURL      string        `envconfig:"EXCHANGE_RATE_API_URL" default:"https://api.exchangerate-api.com/v4/latest"`
	CacheTTL    time.Duration `envconfig:"EXCHANGE_RATE_CACHE_TTL" default:"10m"`
	HTTPTimeout time.Duration `envconfig:"EXCHANGE_RATE_HTTP_TIMEOUT" default:"10s"`
}

type LLMConfig struct {
	APIURL      string        `envconfig:"LLM_API_URL" default:"https://api.openai.com/v1/chat/completions"`
	APIKey      string        `envconfig:"LLM_API_KEY"`
	Model       string        `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"1200"`
	Temperature float64       `envconfig:"LLM_TEMPERATURE" default:"0.2"`
	HTTPTimeout time.Duration `envconfig:"LLM_HTTP_TIMEOUT" default:"60s"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger *slog.Logger, envFiles ...string) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Info(".env not loaded (ok for prod)")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LogValue keeps credentials out of the logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.Env),
		slog.String("port", c.Port),
		slog.String("database_url", maskURL(c.DatabaseURL)),
		slog.String("redis_url", maskURL(c.RedisURL)),
		slog.Any("kafka_brokers", c.Kafka.Brokers),
		slog.String("exchange_api_url", c.Exchange.APIURL),
		slog.Duration("exchange_cache_ttl", c.Exchange.CacheTTL),
		slog.String("llm_api_url", c.LLM.APIURL),
		slog.String("llm_api_key", maskKey(c.LLM.APIKey)),
		slog.String("llm_model", c.LLM.Model),
	)
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}

// maskURL hides the userinfo section of a connection string.
func maskURL(raw string) string {
	scheme := strings.Index(raw, "://")
	at := strings.LastIndex(raw, "@")
	if scheme < 0 || at < scheme {
		return raw
	}
	return raw[:scheme+3] + "****" + raw[at:]
}
