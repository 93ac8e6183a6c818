package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

// APIConfig holds upstream catalog API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Collection           string `mapstructure:"collection"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	PageSize             int    `mapstructure:"page_size"`
}

// CacheConfig holds page cache persistence configuration
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`
	Filename string `mapstructure:"filename"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from YAML file with environment variable
// overrides. A missing config.yaml is fine; defaults apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// CachePath resolves the snapshot file backing the page cache, defaulting to
// a pokedex directory under the platform cache dir.
func (c CacheConfig) CachePath() string {
	filename := c.Filename
	if filename == "" {
		filename = "pokecache.json"
	}

	dir := c.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "pokedex")
	}

	return filepath.Join(dir, filename)
}

func setDefaults() {
	viper.SetDefault("api.base_url", "https://pokeapi.co/api/v2")
	viper.SetDefault("api.collection", "pokemon")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("api.max_requests_per_second", 10)
	viper.SetDefault("api.page_size", 20)

	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.filename", "pokecache.json")

	viper.SetDefault("log.level", "info")
}
