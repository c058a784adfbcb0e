package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBType     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SessionStore  string
	RedisHost     string
	RedisPort     string
	RedisPoolSize int
	SessionSecret string

	StorageBackend string
	MediaDir       string
	MediaURL       string
	S3Bucket       string
	S3Region       string
	AWSAccessKey   string
	AWSSecretKey   string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBType:         getEnv("DB_TYPE", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "foodgram"),
		DBPassword:     getEnv("DB_PASSWORD", "foodgram"),
		DBName:         getEnv("DB_NAME", "foodgram"),
		SessionStore:   getEnv("SESSION_STORE", "redis"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPoolSize:  getEnvAsInt("REDIS_POOL_SIZE", 10),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		MediaDir:       getEnv("MEDIA_DIR", "./media"),
		MediaURL:       getEnv("MEDIA_URL", "/media"),
		S3Bucket:       getEnv("AWS_S3_BUCKET", ""),
		S3Region:       getEnv("AWS_S3_REGION", ""),
		AWSAccessKey:   getEnv("AWS_ACCESS_KEY", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
