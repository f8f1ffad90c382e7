package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	History HistoryConfig
	LogFile string `envconfig:"LOG_FILE" default:"converter.log"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:3000"`
	Timeout time.Duration `envconfig:"API_TIMEOUT"  default:"10s"`
}

type SessionConfig struct {
	TokenFile string `envconfig:"TOKEN_FILE" default:"token.json"`
}

type HistoryConfig struct {
	JournalFile string `envconfig:"HISTORY_FILE" default:"history.json"`
	PageSize    int    `envconfig:"PAGE_SIZE"    default:"10"`
}

func NewConfig() (*Config, error) {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return &cfg, nil
}
