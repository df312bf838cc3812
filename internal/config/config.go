package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App        *AppConfig        `yaml:"app"`
	Store      *StoreConfig      `yaml:"store"`
	Simulation *SimulationConfig `yaml:"simulation"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

type StoreConfig struct {
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
	Seed     bool   `yaml:"seed"`
}

// SimulationConfig controls the optional artificial latency applied at the
// HTTP boundary. Zero delay disables it; core operations are always
// synchronous.
type SimulationConfig struct {
	Delay time.Duration `yaml:"delay"`
}

func Load() (*Config, error) {
	config := &Config{
		App:        loadAppConfig(),
		Store:      loadStoreConfig(),
		Simulation: loadSimulationConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "UniPool"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

func loadStoreConfig() *StoreConfig {
	return &StoreConfig{
		Path:     getEnv("STORE_PATH", "unipool_db.json"),
		MaxBytes: int64(getEnvAsInt("STORE_MAX_BYTES", 5*1024*1024)),
		Seed:     getEnvAsBool("STORE_SEED", true),
	}
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Delay: getEnvAsDuration("SIM_DELAY", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
