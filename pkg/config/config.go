package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	Env          string
	PostgresURL  string
	MongoURI     string
	StoreTimeout time.Duration
	WSSendBuffer int
	SeedDemo     bool
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		PostgresURL:  getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:     getEnv("MONGO_URI", ""),
		StoreTimeout: getDuration("STORE_TIMEOUT", 5*time.Second),
		WSSendBuffer: getInt("WS_SEND_BUFFER", 16),
		SeedDemo:     getBool("SEED_DEMO_USERS", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
