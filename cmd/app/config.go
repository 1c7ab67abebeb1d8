package main

import (
	"fmt"
	"strings"
	"time"

	"perma/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"

	launchDateFormat = "2006-01-02"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Auth         AuthConfig         `yaml:"auth"`
	Achievements AchievementsConfig `yaml:"achievements"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwtSecret"`
	TokenTTLHours int    `yaml:"tokenTTLHours"`
}

type AchievementsConfig struct {
	// LaunchDate anchors the early-adopter cutoff (launch + 30 days).
	// It is configuration, not a derived constant.
	LaunchDate string `yaml:"launchDate"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) LaunchDate() (time.Time, error) {
	launchDate, err := time.Parse(launchDateFormat, c.Achievements.LaunchDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse launch date: %w", err)
	}
	return launchDate, nil
}
