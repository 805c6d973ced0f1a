package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	defaultAddr     = ":8000"
	defaultDataDir  = "."
	defaultLogLevel = "info"
)

var defaultOrigins = []string{"http://localhost:4200"}

type Config struct {
	Server ServerConfig `yaml:"server"`
	CORS   CORSConfig   `yaml:"cors"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr},
		CORS:   CORSConfig{AllowedOrigins: defaultOrigins},
		Data:   DataConfig{Dir: defaultDataDir},
		Log:    LogConfig{Level: defaultLogLevel},
	}
}

// Load layers the optional YAML file, then environment overrides, on
// top of the defaults. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getenv("FINDATA_ADDR", c.Server.Addr)
	c.Data.Dir = getenv("FINDATA_DATA_DIR", c.Data.Dir)
	c.Log.Level = getenv("FINDATA_LOG_LEVEL", c.Log.Level)
	if origins := strings.TrimSpace(os.Getenv("FINDATA_CORS_ORIGINS")); origins != "" {
		c.CORS.AllowedOrigins = splitList(origins)
	}
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaultAddr
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		c.Data.Dir = defaultDataDir
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = defaultLogLevel
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = defaultOrigins
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		items = append(items, trimmed)
	}
	return items
}
