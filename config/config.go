package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort                 string `mapstructure:"APP_PORT"`
	DatabaseURL             string `mapstructure:"DATABASE_URL"`
	DatabaseName            string `mapstructure:"DATABASE_NAME"`
	Env                     string `mapstructure:"ENV"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	LogLevel                string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin       int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RedisAddr               string `mapstructure:"REDIS_ADDR"`
	RedisPassword           string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB            int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB            int    `mapstructure:"REDIS_QUEUE_DB"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	BookingTimezone         string `mapstructure:"BOOKING_TIMEZONE"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig reads configuration from the environment and an optional
// .env file, populating AppConfig.
func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "barberbook")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "firebase-credentials.json")
	viper.SetDefault("BOOKING_TIMEZONE", "UTC")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("No .env file found, relying on environment variables: %v", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode configuration: %v", err)
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
}

// GetEnv returns the current environment name.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction reports whether the app runs in production mode.
func IsProduction() bool {
	return strings.EqualFold(AppConfig.Env, "production")
}
