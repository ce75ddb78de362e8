// Package config инициализирует конфигурацию сервиса пакетного удаления конвертов.
// Приоритет источников: переменные окружения > флаги командной строки > JSON-файл > значения по умолчанию.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

// Значения по умолчанию
const (
	DefaultServerAddress  = ":8080"
	DefaultEndpointURL    = "https://www.docusign.net/api/3.0/api.asmx"
	DefaultSOAPAction     = "http://www.docusign.net/API/3.0/DeleteEnvelopes"
	DefaultBatchSize      = 50
	DefaultRequestTimeout = 30000 // мс
	DefaultBatchDelay     = 10000 // мс
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`     // Адрес для запуска HTTP-сервера
	EndpointURL     string `env:"SOAP_ENDPOINT_URL"`  // URL SOAP-эндпоинта провайдера
	SOAPAction      string `env:"SOAP_ACTION"`        // URI SOAP-действия DeleteEnvelopes
	BatchSize       int    `env:"BATCH_SIZE"`         // Максимальный размер пакета
	RequestTimeout  int    `env:"REQUEST_TIMEOUT_MS"` // Таймаут одного пакета, мс
	BatchDelay      int    `env:"BATCH_DELAY_MS"`     // Пауза между пакетами, мс
	DatabaseDSN     string `env:"DATABASE_DSN"`       // DSN PostgreSQL для истории запусков
	FileStoragePath string `env:"FILE_STORAGE_PATH"`  // Путь к файлу истории запусков
	ConfigFile      string `env:"CONFIG"`             // Путь к JSON-файлу конфигурации
}

// JSONConfig представляет конфигурацию из JSON-файла.
// Поля-указатели позволяют отличить отсутствующее значение от нулевого.
type JSONConfig struct {
	ServerAddress   *string `json:"server_address"`
	EndpointURL     *string `json:"endpoint_url"`
	SOAPAction      *string `json:"soap_action"`
	BatchSize       *int    `json:"batch_size"`
	RequestTimeout  *int    `json:"request_timeout_ms"`
	BatchDelay      *int    `json:"batch_delay_ms"`
	DatabaseDSN     *string `json:"database_dsn"`
	FileStoragePath *string `json:"file_storage_path"`
}

// NewConfig инициализирует конфигурацию, читая флаги, JSON-файл и переменные окружения.
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:  DefaultServerAddress,
		EndpointURL:    DefaultEndpointURL,
		SOAPAction:     DefaultSOAPAction,
		BatchSize:      DefaultBatchSize,
		RequestTimeout: DefaultRequestTimeout,
		BatchDelay:     DefaultBatchDelay,
	}

	// 1. Определение флагов командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.EndpointURL, "e", cfg.EndpointURL, "URL SOAP-эндпоинта провайдера (env: SOAP_ENDPOINT_URL)")
	flag.StringVar(&cfg.SOAPAction, "s", cfg.SOAPAction, "URI SOAP-действия (env: SOAP_ACTION)")
	flag.IntVar(&cfg.BatchSize, "b", cfg.BatchSize, "Максимальный размер пакета (env: BATCH_SIZE)")
	flag.IntVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Таймаут одного пакета в мс (env: REQUEST_TIMEOUT_MS)")
	flag.IntVar(&cfg.BatchDelay, "delay", cfg.BatchDelay, "Пауза между пакетами в мс (env: BATCH_DELAY_MS)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "DSN PostgreSQL (env: DATABASE_DSN)")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "Путь к файлу истории запусков (env: FILE_STORAGE_PATH)")
	flag.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "Путь к JSON-файлу конфигурации (env: CONFIG)")

	// 2. Парсинг флагов командной строки
	flag.Parse()

	// 3. JSON-файл заполняет только значения, оставшиеся по умолчанию
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG")
	}
	if cfg.ConfigFile != "" {
		jsonCfg, err := loadJSONConfig(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		applyJSONConfig(cfg, jsonCfg)
	}

	// 4. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadJSONConfig читает конфигурацию из JSON-файла
func loadJSONConfig(filename string) (*JSONConfig, error) {
	if filename == "" {
		return &JSONConfig{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var jsonCfg JSONConfig
	if err := json.Unmarshal(data, &jsonCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &jsonCfg, nil
}

// applyJSONConfig применяет значения из JSON-файла к полям,
// не переопределенным флагами командной строки
func applyJSONConfig(cfg *Config, jsonCfg *JSONConfig) {
	if jsonCfg.ServerAddress != nil && cfg.ServerAddress == DefaultServerAddress {
		cfg.ServerAddress = *jsonCfg.ServerAddress
	}
	if jsonCfg.EndpointURL != nil && cfg.EndpointURL == DefaultEndpointURL {
		cfg.EndpointURL = *jsonCfg.EndpointURL
	}
	if jsonCfg.SOAPAction != nil && cfg.SOAPAction == DefaultSOAPAction {
		cfg.SOAPAction = *jsonCfg.SOAPAction
	}
	if jsonCfg.BatchSize != nil && cfg.BatchSize == DefaultBatchSize {
		cfg.BatchSize = *jsonCfg.BatchSize
	}
	if jsonCfg.RequestTimeout != nil && cfg.RequestTimeout == DefaultRequestTimeout {
		cfg.RequestTimeout = *jsonCfg.RequestTimeout
	}
	if jsonCfg.BatchDelay != nil && cfg.BatchDelay == DefaultBatchDelay {
		cfg.BatchDelay = *jsonCfg.BatchDelay
	}
	if jsonCfg.DatabaseDSN != nil && cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = *jsonCfg.DatabaseDSN
	}
	if jsonCfg.FileStoragePath != nil && cfg.FileStoragePath == "" {
		cfg.FileStoragePath = *jsonCfg.FileStoragePath
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", c.RequestTimeout)
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("batch delay must be non-negative, got %d", c.BatchDelay)
	}
	if c.SOAPAction == "" {
		return fmt.Errorf("SOAP action is required")
	}
	if _, err := url.ParseRequestURI(c.EndpointURL); err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	return nil
}

// Timeout возвращает таймаут одного пакета как time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// Delay возвращает паузу между пакетами как time.Duration
func (c *Config) Delay() time.Duration {
	return time.Duration(c.BatchDelay) * time.Millisecond
}
