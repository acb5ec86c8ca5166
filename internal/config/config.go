package config

import "os"

// Config carries everything the app reads from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	CartDir     string
	LogLevel    string
}

func Load() Config {
	return Config{
		Addr:        ":" + getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CartDir:     getEnv("CART_DIR", "./carts"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
