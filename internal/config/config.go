package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// DATABASE_URL vacio deja el catalogo en memoria.
	DatabaseURL string `env:"DATABASE_URL"`

	LLMAPIKey         string        `env:"LLM_API_KEY,required"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"gpt-5.1"`
	LLMEmbeddingModel string        `env:"LLM_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	SessionTokenSecret string        `env:"SESSION_TOKEN_SECRET"`
	SessionTokenTTL    time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
	SessionMaxIdle     time.Duration `env:"SESSION_MAX_IDLE" envDefault:"2h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ChatRateWindow time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
	ChatRateMax    int           `env:"CHAT_RATE_MAX" envDefault:"20"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
