package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port             uint     `json:"port"`
	MaxDepth         int      `json:"max_depth"`
	MaxQDepth        int      `json:"max_quiescence_depth"`
	RequestTimeoutMs int      `json:"request_timeout_ms"`
	AllowedOrigins   []string `json:"allowed_origins"`
	WSReadBuffer     int      `json:"ws_read_buffer"`
	WSWriteBuffer    int      `json:"ws_write_buffer"`
}

func DefaultConfig() Config {
	return Config{
		Port:             8080,
		MaxDepth:         10,
		MaxQDepth:        8,
		RequestTimeoutMs: 30000,
		AllowedOrigins:   []string{"*"},
		WSReadBuffer:     1024,
		WSWriteBuffer:    1024,
	}
}

// LoadConfig overlays the JSON file at path on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Port == 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("config %s: invalid port %d", path, cfg.Port)
	}
	return cfg, nil
}

func (c Config) requestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}
