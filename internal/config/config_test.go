package config

import (
	"flag"
	"os"
	"testing"
	"time"
)

// configEnvVars — переменные окружения, которые читает конфигурация
var configEnvVars = []string{
	"SERVER_ADDRESS", "SOAP_ENDPOINT_URL", "SOAP_ACTION",
	"BATCH_SIZE", "REQUEST_TIMEOUT_MS", "BATCH_DELAY_MS",
	"DATABASE_DSN", "FILE_STORAGE_PATH", "CONFIG",
}

// resetEnv очищает переменные окружения конфигурации и восстанавливает их после теста
func resetEnv(t *testing.T) {
	t.Helper()
	saved := make(map[string]string)
	for _, name := range configEnvVars {
		if value, ok := os.LookupEnv(name); ok {
			saved[name] = value
		}
		os.Unsetenv(name)
	}
	t.Cleanup(func() {
		for _, name := range configEnvVars {
			if value, ok := saved[name]; ok {
				os.Setenv(name, value)
			} else {
				os.Unsetenv(name)
			}
		}
	})
}

func TestConfigPriority(t *testing.T) {
	resetEnv(t)

	// Сохраняем оригинальные аргументы командной строки
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name         string
		envEndpoint  string
		envBatchSize string
		args         []string
		wantEndpoint string
		wantBatch    int
	}{
		{
			name:         "Default values",
			args:         []string{"cmd"},
			wantEndpoint: DefaultEndpointURL,
			wantBatch:    DefaultBatchSize,
		},
		{
			name:         "Environment variables override defaults",
			envEndpoint:  "https://demo.docusign.net/api.asmx",
			envBatchSize: "25",
			args:         []string{"cmd"},
			wantEndpoint: "https://demo.docusign.net/api.asmx",
			wantBatch:    25,
		},
		{
			name:         "Command line flags override defaults",
			args:         []string{"cmd", "-e", "https://test.example.com/api.asmx", "-b", "10"},
			wantEndpoint: "https://test.example.com/api.asmx",
			wantBatch:    10,
		},
		{
			name:         "Environment variables override command line flags",
			envEndpoint:  "https://demo.docusign.net/api.asmx",
			envBatchSize: "25",
			args:         []string{"cmd", "-e", "https://test.example.com/api.asmx", "-b", "10"},
			wantEndpoint: "https://demo.docusign.net/api.asmx",
			wantBatch:    25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envEndpoint != "" {
				os.Setenv("SOAP_ENDPOINT_URL", tt.envEndpoint)
			} else {
				os.Unsetenv("SOAP_ENDPOINT_URL")
			}
			if tt.envBatchSize != "" {
				os.Setenv("BATCH_SIZE", tt.envBatchSize)
			} else {
				os.Unsetenv("BATCH_SIZE")
			}

			// Сбрасываем флаги между запусками NewConfig
			flag.CommandLine = flag.NewFlagSet(tt.args[0], flag.ExitOnError)
			os.Args = tt.args

			cfg, err := NewConfig()
			if err != nil {
				t.Fatalf("NewConfig() error: %v", err)
			}

			if cfg.EndpointURL != tt.wantEndpoint {
				t.Errorf("EndpointURL = %q, want %q", cfg.EndpointURL, tt.wantEndpoint)
			}
			if cfg.BatchSize != tt.wantBatch {
				t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, tt.wantBatch)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	resetEnv(t)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	flag.CommandLine = flag.NewFlagSet("cmd", flag.ExitOnError)
	os.Args = []string{"cmd"}

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	if cfg.ServerAddress != DefaultServerAddress {
		t.Errorf("ServerAddress = %q, want %q", cfg.ServerAddress, DefaultServerAddress)
	}
	if cfg.SOAPAction != DefaultSOAPAction {
		t.Errorf("SOAPAction = %q, want %q", cfg.SOAPAction, DefaultSOAPAction)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %d, want %d", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.BatchDelay != DefaultBatchDelay {
		t.Errorf("BatchDelay = %d, want %d", cfg.BatchDelay, DefaultBatchDelay)
	}
	if got, want := cfg.Timeout(), 30*time.Second; got != want {
		t.Errorf("Timeout() = %v, want %v", got, want)
	}
	if got, want := cfg.Delay(), 10*time.Second; got != want {
		t.Errorf("Delay() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServerAddress:  DefaultServerAddress,
		EndpointURL:    DefaultEndpointURL,
		SOAPAction:     DefaultSOAPAction,
		BatchSize:      DefaultBatchSize,
		RequestTimeout: DefaultRequestTimeout,
		BatchDelay:     DefaultBatchDelay,
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "Valid config", modify: func(c *Config) {}, wantErr: false},
		{name: "Zero batch size", modify: func(c *Config) { c.BatchSize = 0 }, wantErr: true},
		{name: "Negative batch size", modify: func(c *Config) { c.BatchSize = -1 }, wantErr: true},
		{name: "Zero timeout", modify: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "Negative delay", modify: func(c *Config) { c.BatchDelay = -1 }, wantErr: true},
		{name: "Zero delay allowed", modify: func(c *Config) { c.BatchDelay = 0 }, wantErr: false},
		{name: "Empty SOAP action", modify: func(c *Config) { c.SOAPAction = "" }, wantErr: true},
		{name: "Invalid endpoint URL", modify: func(c *Config) { c.EndpointURL = "not a url" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected error, but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
