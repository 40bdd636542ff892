package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tienda-backend/database"
	"tienda-backend/services"
)

// Config holds all configuration for the API.
type Config struct {
	Port      string
	JWTSecret string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisAddr     string
	RedisPassword string

	RapidAPIHost string
	RapidAPIKey  string

	// Warehouse the store ships from; carrier quotes price from here.
	OriginPostalCode string
	OriginProvince   string
}

// DatabaseConfig builds the Postgres connection parameters.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		Name:     c.PostgresDB,
		SSLMode:  c.PostgresSSLMode,
		TimeZone: c.PostgresTimeZone,
	}
}

// Origin builds the shipping origin from config values.
func (c *Config) Origin() services.Origin {
	return services.Origin{
		PostalCode: c.OriginPostalCode,
		Province:   c.OriginProvince,
	}
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "America/Argentina/Buenos_Aires"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RapidAPIHost: getEnv("RAPIDAPI_HOST", "correo-argentino1.p.rapidapi.com"),
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),

		OriginPostalCode: getEnv("ORIGIN_POSTAL_CODE", "1007"),
		OriginProvince:   getEnv("ORIGIN_PROVINCE", "AR-C"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
