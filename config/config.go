package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// LINE WORKS credentials
	LWClientID       string
	LWServiceAccount string
	LWDomainID       string
	LWPrivateKey     string // PEM; "\n" escapes allowed when set via env
	LWBotSecret      string
	LWChatID         string

	LWAPIServer string
	LWTokenURL  string

	OutputDir string
}

// LoadConfig reads .env (if present) and builds the configuration.
// The returned struct is constructed once in main and handed to every
// collaborator; nothing else reads the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Relying on environment variables.")
	}
	return &Config{
		AppEnv:     os.Getenv("APP_ENV"),
		Port:       getenv("PORT", "8080"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "127.0.0.1"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),

		LWClientID:       os.Getenv("LW_CLIENT_ID"),
		LWServiceAccount: os.Getenv("LW_SERVICE_ACCOUNT"),
		LWDomainID:       os.Getenv("LW_DOMAIN_ID"),
		LWPrivateKey:     strings.ReplaceAll(os.Getenv("LW_PRIVATE_KEY"), `\n`, "\n"),
		LWBotSecret:      os.Getenv("LW_BOT_SECRET"),
		LWChatID:         os.Getenv("LW_CHAT_ID"),

		LWAPIServer: getenv("LW_API_SERVER", "https://www.worksapis.com"),
		LWTokenURL:  getenv("LW_TOKEN_URL", "https://auth.worksmobile.com/oauth2/v2.0/token"),

		OutputDir: getenv("OUTPUT_DIR", "generated"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
