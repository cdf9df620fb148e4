package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env                 string `mapstructure:"ENV"`
	APIBaseURL          string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds  int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	PollIntervalSeconds int    `mapstructure:"POLL_INTERVAL_SECONDS"`
	MinInstantDeposit   int64  `mapstructure:"MIN_INSTANT_DEPOSIT"`
	MinWithdrawal       int64  `mapstructure:"MIN_WITHDRAWAL"`
	StateFilePath       string `mapstructure:"STATE_FILE_PATH"`
	Papertrail          string `mapstructure:"PAPERTRAIL"`
	PapertrailAppName   string `mapstructure:"PAPERTRAIL_APP_NAME"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("API_BASE_URL", "https://api.trebetta.com/api")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	v.SetDefault("POLL_INTERVAL_SECONDS", 4)
	v.SetDefault("MIN_INSTANT_DEPOSIT", 500)
	v.SetDefault("MIN_WITHDRAWAL", 1000)
	v.SetDefault("STATE_FILE_PATH", ".trebetta_state")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	// Create config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.APIBaseURL == "" {
		return fmt.Errorf("API base URL must be specified")
	}

	if config.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	return nil
}

func LoadCustomConfig(path string, val interface{}) error {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Allow overriding config via environment variables
	v.SetEnvPrefix("TREBETTA")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}
