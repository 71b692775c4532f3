package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	DatasetTTL time.Duration
}

func LoadConfig() *Config {
	// Load .env file kalau ada (opsional di production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using system env")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		DatasetTTL: time.Duration(getEnvInt("DATASET_TTL_MINUTES", 60)) * time.Minute,
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
