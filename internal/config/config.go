package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	VerifyToken     string
	PageAccessToken string
	GraphAPIURL     string
	DatabaseURL     string
	DBPath          string
	SessionBackend  string
	AllowedOrigin   string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		VerifyToken:     getEnv("VERIFY_TOKEN", ""),
		PageAccessToken: getEnv("PAGE_ACCESS_TOKEN", ""),
		GraphAPIURL:     getEnv("GRAPH_API_URL", "https://graph.facebook.com/v18.0"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBPath:          getEnv("DB_PATH", "./messenger.db"),
		SessionBackend:  getEnv("SESSION_BACKEND", "memory"),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
