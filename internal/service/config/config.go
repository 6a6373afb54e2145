package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	Env           string `mapstructure:"ENV"`
	APIKey        string `mapstructure:"API_KEY"`
	BaseURI       string `mapstructure:"BASE_URI"`
	DefaultFormat string `mapstructure:"DEFAULT_FORMAT"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("BASE_URI", "http://indivo.org/records/")
	v.SetDefault("DEFAULT_FORMAT", "xml")

	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("API_KEY")
	v.BindEnv("BASE_URI")
	v.BindEnv("DEFAULT_FORMAT")

	// A missing .env is fine; the environment wins either way.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
