package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application
type Config struct {
	BotToken     string
	DatabasePath string
	TriviaAPIURL string
	Debug        bool
}

// Load reads .env if present, then the configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment
func FromEnv() (*Config, error) {
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, errors.New("BOT_TOKEN environment variable is required")
	}

	// Set database path with default
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/trivia.db"
	}

	return &Config{
		BotToken:     botToken,
		DatabasePath: dbPath,
		TriviaAPIURL: os.Getenv("TRIVIA_API_URL"),
		Debug:        os.Getenv("DEBUG") == "true",
	}, nil
}
