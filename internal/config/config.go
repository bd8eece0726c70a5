package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	RedisAddr string

	PayMongoSecretKey string
	PayMongoBaseURL   string
	WebhookToken      string
	SuccessURL        string
	FailureURL        string

	JWTSecret string

	S3Bucket  string
	S3Region  string
	S3Key     string
	S3Secret  string
	S3BaseURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		PayMongoSecretKey: os.Getenv("PAYMONGO_SECRET_KEY"),
		PayMongoBaseURL:   os.Getenv("PAYMONGO_BASE_URL"),
		WebhookToken:      os.Getenv("PAYMONGO_WEBHOOK_TOKEN"),
		SuccessURL:        os.Getenv("SUCCESS_URL"),
		FailureURL:        os.Getenv("FAILURE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		S3Bucket:  os.Getenv("S3_BUCKET"),
		S3Region:  os.Getenv("S3_REGION"),
		S3Key:     os.Getenv("S3_KEY"),
		S3Secret:  os.Getenv("S3_SECRET"),
		S3BaseURL: os.Getenv("S3_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.PayMongoBaseURL == "" {
		cfg.PayMongoBaseURL = "https://api.paymongo.com"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}

	return cfg
}
