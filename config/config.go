package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	TesseractDataPath string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	// A missing API key is not fatal here: the extraction layer degrades
	// to a fallback record when the completion call fails.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is not set; financial extraction will fail until it is configured")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		OpenAIAPIKey:      apiKey,
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
