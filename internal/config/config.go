package config

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	// SessionSecret signs the session cookie. When SESSION_SECRET is unset a
	// random per-boot key is used, which invalidates sessions on restart.
	SessionSecret []byte
	AdminUsername string
	AdminPassword string
	AdminName     string
	SeedDemoData  bool
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL required")
	}

	secret := []byte(os.Getenv("SESSION_SECRET"))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
	}

	return Config{
		Port:          getEnv("APP_PORT", "8080"),
		DatabaseURL:   databaseURL,
		SessionSecret: secret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
