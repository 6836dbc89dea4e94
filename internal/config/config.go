package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Sin LLM_API_KEY el servicio arranca igual y usa siempre el texto de fallback.
	LLMAPIKey        string        `env:"LLM_API_KEY"`
	LLMBaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature   float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	NarrativeTimeout time.Duration `env:"NARRATIVE_TIMEOUT" envDefault:"20s"`

	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	ReportCacheTTL   time.Duration `env:"REPORT_CACHE_TTL" envDefault:"10m"`
	RegenerateLimit  int           `env:"REGENERATE_LIMIT" envDefault:"5"`
	RegenerateWindow time.Duration `env:"REGENERATE_WINDOW" envDefault:"1h"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	BookCacheSize int `env:"BOOK_CACHE_SIZE" envDefault:"512"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// JWTAccessTTL devuelve la duracion de los access tokens.
func (c *Config) JWTAccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}
