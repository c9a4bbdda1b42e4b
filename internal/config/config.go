package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the app.
type Config struct {
	App    AppConfig
	Twilio TwilioConfig
}

// AppConfig controls server-level behavior.
type AppConfig struct {
	Port         string
	Timezone     string
	SecretKey    string
	DBPath       string
	CookieSecure bool
}

// TwilioConfig holds the SMS transport credentials. Absence of any one value
// disables sending.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Load reads configuration from the environment, honoring a local .env file
// when present and applying defaults where possible.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		App: AppConfig{
			Port:         getEnv("PORT", "8080"),
			Timezone:     getEnv("TZ", "UTC"),
			SecretKey:    getEnv("SECRET_KEY", "change_me_in_production"),
			DBPath:       getEnv("DB_PATH", filepath.Join("data", "scheduleassistant.db")),
			CookieSecure: getEnv("COOKIE_SECURE", "") == "1",
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
