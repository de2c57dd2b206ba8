package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		EnableAuth bool   `toml:"enable_auth"`
	} `toml:"server"`

	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenHeader      string `toml:"token_header"`
		TokenKeyTemplate string `toml:"token_key_template"`
	} `toml:"auth"`

	API struct {
		UserHeader      string         `toml:"user_header"`
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Database struct {
		DSN string `toml:"dsn"`
	} `toml:"database"`

	Grading struct {
		Endpoint       string `toml:"endpoint"`
		APIKey         string `toml:"api_key"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"grading"`
}

func (c *Config) GradingTimeout() time.Duration {
	if c.Grading.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Grading.TimeoutSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	if config.Grading.Endpoint == "" {
		return nil, fmt.Errorf("Grading endpoint is not specified in config")
	}

	logger.Debug.Printf("Loaded grading config: %+v", config.Grading)

	return &config, nil
}
