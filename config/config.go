package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	RedisURL       string
	PostgresDSN    string
	BackendBaseURL string
	JWTSecret      string
	KafkaBrokers   string
	KafkaTopic     string
	OrderTopicArn  string
	CartTTL        time.Duration
	BackendTimeout time.Duration

	AuthRatePerMinute int
	AuthRateBurst     int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		RedisURL:       getEnv("REDIS_URL", "redis://redis:6379"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "checkout.requested"),
		OrderTopicArn:  getEnv("ORDER_TOPIC_ARN", ""),
		CartTTL:        time.Hour * 24 * 7, // default 7 days
		BackendTimeout: 10 * time.Second,

		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 100),
		AuthRateBurst:     getEnvInt("AUTH_RATE_BURST", 50),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default %d", key, defaultVal)
	}
	return defaultVal
}
