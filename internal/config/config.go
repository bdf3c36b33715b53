package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read from the environment.
type Config struct {
	MongoURI string // empty: run on the embedded fallback content
	RedisURL string // empty: in-memory sessions only
	HTTPPort string

	JWTSecret string

	SessionTTL      time.Duration
	CleanupInterval time.Duration
	QuestionCount   int
}

func Load() *Config {
	return &Config{
		MongoURI:        os.Getenv("MONGO_URI"),
		RedisURL:        os.Getenv("REDIS_URL"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MIN", 60)) * time.Minute,
		CleanupInterval: time.Duration(getEnvInt("CLEANUP_INTERVAL_MIN", 5)) * time.Minute,
		QuestionCount:   getEnvInt("QUESTION_COUNT", 8),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
