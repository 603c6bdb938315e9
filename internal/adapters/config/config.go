package config

import (
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port            string
	BindInterface   string
	ShutdownTimeout time.Duration
}

type CacheConfig struct {
	ProductTTL time.Duration
}

type IdempotencyConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	Level        string
	IsProduction bool
}

type Config struct {
	Mongo       MongoConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Outbox      OutboxConfig
	HTTP        HTTPConfig
	Cache       CacheConfig
	Idempotency IdempotencyConfig
	RateLimit   RateLimitConfig
	Logger      LoggerConfig
}

// NewConfig reads the environment, after loading a .env file when one is
// present. Unset or malformed variables fall back to their defaults.
func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database:               getStringEnv("MONGO_DATABASE", "catalog"),
			Timeout:                getDurationEnv("MONGO_TIMEOUT", 10*time.Second),
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         getDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			ServerSelectionTimeout: getDurationEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  getDurationEnv("OUTBOX_INTERVAL", 500*time.Millisecond),
		},
		HTTP: HTTPConfig{
			Port:            getStringEnv("HTTP_PORT", "8080"),
			BindInterface:   getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
			ShutdownTimeout: getDurationEnv("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			ProductTTL: getDurationEnv("CACHE_TTL", 15*time.Minute),
		},
		Idempotency: IdempotencyConfig{
			TTL:          getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
			PollInterval: getDurationEnv("IDEMPOTENCY_POLL_INTERVAL", 100*time.Millisecond),
			PollTimeout:  getDurationEnv("IDEMPOTENCY_POLL_TIMEOUT", 5*time.Second),
		},
		RateLimit: RateLimitConfig{
			Limit:  getIntEnv("RATE_LIMIT_REQUESTS", 60),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("RABBITMQ_RETRY_DELAY", time.Second),
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_EXCHANGE_NAME", "exchange.product"),
					Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
					Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
					AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
				},
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "catalog"),
			Level:        getStringEnv("LOG_LEVEL", "info"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
		},
	}
}
