package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisURL string

	ServerPort string
	LogLevel   string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	TokenMaxAge int // seconds

	FeedPageSize    int
	FeedCacheTTL    int // seconds, sliding
	FeedMaxPageSize int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	tokenMaxAge := envInt("TOKEN_MAX_AGE", 7*24*3600)
	feedPageSize := envInt("FEED_PAGE_SIZE", 10)
	feedCacheTTL := envInt("FEED_CACHE_TTL", 30)
	feedMaxPageSize := envInt("FEED_MAX_PAGE_SIZE", 50)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		RedisURL: redisURL,

		ServerPort: serverPort,
		LogLevel:   logLevel,

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),

		TokenMaxAge: tokenMaxAge,

		FeedPageSize:    feedPageSize,
		FeedCacheTTL:    feedCacheTTL,
		FeedMaxPageSize: feedMaxPageSize,
	}, nil
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
