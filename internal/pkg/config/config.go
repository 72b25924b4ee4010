package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT     JWTConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Notify  NotifyConfig
	Partner PartnerConfig
	Reset   ResetConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISS, default=travelink-api"`
	Audience string        `env:"JWT_AUD, default=travelink-clients"`
	TTL      time.Duration `env:"JWT_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=travelink"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     string `env:"SMTP_PORT, default=25"`
	From     string `env:"SMTP_FROM, default=no-reply@travelink.io"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
}

type NotifyConfig struct {
	// WebhookURL is the endpoint notified of credential events. Empty
	// disables webhook notifications.
	WebhookURL    string `env:"WEBHOOK_URL"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	Workers       int    `env:"NOTIFY_WORKERS, default=4"`
}

type PartnerConfig struct {
	// URL is the base address of the external reservation service.
	URL    string `env:"PARTNER_SERVICE_URL, default=http://localhost:8083"`
	Secret string `env:"PARTNER_WEBHOOK_SECRET"`
}

type ResetConfig struct {
	// URL is the front-end page the reset email links to.
	URL    string        `env:"RESET_URL,         default=https://booking.travelink.io/reset-password"`
	Limit  int           `env:"RESET_RATE_LIMIT,  default=3"`
	Window time.Duration `env:"RESET_RATE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
