package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. A local .env file is honoured when present so that
// development setups do not need to export anything by hand.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	MongoURI string // MongoDB connection string

	PasswordMarker string // shared secret delimiter used by the credential transform

	UploadDir string // staging directory for multipart uploads before they enter the store

	UsernameMin int // lower bound on admin username length
	UsernameMax int // upper bound on admin username length
	PasswordMin int // lower bound on admin password length
	PasswordMax int // upper bound on admin password length

	AdminUsername string // optional: seed this admin account on startup
	AdminPassword string // optional: plaintext password for the seeded account

	TelegramToken  string // bot token for the feedback relay
	TelegramChatID string // chat the feedback relay posts into
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // .env is optional

	return Config{
		Env:      envStr("APP_ENV", "dev"),
		Port:     must("APP_PORT"),
		MongoURI: must("MONGO_URI"),

		PasswordMarker: must("PASSWORD_MARKER"),

		UploadDir: envStr("UPLOAD_DIR", "uploads"),

		UsernameMin: envInt("USERNAME_MIN_LEN", 4),
		UsernameMax: envInt("USERNAME_MAX_LEN", 12),
		PasswordMin: envInt("PASSWORD_MIN_LEN", 4),
		PasswordMax: envInt("PASSWORD_MAX_LEN", 8),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
