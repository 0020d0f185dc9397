package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded into the process environment when present, so a local
// .env behaves exactly like exported variables. Existing variables win.
const envFile = ".env"

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
func parseEnv(config *Config) {
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	setString(&config.EndpointAddr, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.Env, "APP_ENV")
	setString(&config.SecretKey, "JWT_SECRET")
	setDuration(&config.TokenValidityDuration, "JWT_EXPIRE")
	setDuration(&config.CookieValidityDuration, "COOKIE_EXPIRE")
	setString(&config.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&config.FromName, "FROM_NAME")
	setString(&config.FromEmail, "FROM_EMAIL")
	setFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS")
	setInt(&config.RateLimitBurst, "RATE_LIMIT_BURST")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
