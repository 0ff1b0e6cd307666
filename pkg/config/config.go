package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Engine EngineConfig
	Logger LoggerConfig
}

type LoggerConfig struct {
	Level string
}

// EngineConfig holds the tunable thresholds of the analytics engine.
type EngineConfig struct {
	// AnomalyStdDevs is how many population standard deviations an amount
	// must deviate from the category mean to be flagged.
	AnomalyStdDevs float64
	// SavingsTargetRate is the savings rate (percent of income) the budget
	// health analysis compares against.
	SavingsTargetRate float64
	// DefaultAnnualReturn is the expected yearly return used for goal
	// forecasts when the caller does not supply one.
	DefaultAnnualReturn float64
	// DefaultMonthsAhead is the cash-flow prediction horizon used when the
	// caller does not supply one.
	DefaultMonthsAhead int
}

func Load() (*Config, error) {
	// .env is optional; environment variables alone are fine (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return &Config{
		Engine: EngineConfig{
			AnomalyStdDevs:      getEnvFloat("ENGINE_ANOMALY_STD_DEVS", 2.0),
			SavingsTargetRate:   getEnvFloat("ENGINE_SAVINGS_TARGET_RATE", 20.0),
			DefaultAnnualReturn: getEnvFloat("ENGINE_DEFAULT_ANNUAL_RETURN", 0.07),
			DefaultMonthsAhead:  getEnvInt("ENGINE_DEFAULT_MONTHS_AHEAD", 6),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// DefaultEngine returns the engine thresholds with their documented defaults,
// without touching the environment.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		AnomalyStdDevs:      2.0,
		SavingsTargetRate:   20.0,
		DefaultAnnualReturn: 0.07,
		DefaultMonthsAhead:  6,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
