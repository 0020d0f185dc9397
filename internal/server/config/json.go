package config

import (
	"encoding/json"
	"os"

	"github.com/campdir/campdir/internal/flagx"
	"github.com/campdir/campdir/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields use timex.Duration so both "720h" and integer
// nanoseconds parse. After unmarshalling, non-zero values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr           string         `json:"endpoint_addr"`
	DatabaseDSN            string         `json:"database_dsn"`
	Env                    string         `json:"env"`
	SecretKey              string         `json:"secret_key"`
	TokenValidityDuration  timex.Duration `json:"token_validity_duration"`
	CookieValidityDuration timex.Duration `json:"cookie_validity_duration"`
	PublicBaseURL          string         `json:"public_base_url"`
	SendGridAPIKey         string         `json:"sendgrid_api_key"`
	FromName               string         `json:"from_name"`
	FromEmail              string         `json:"from_email"`
	RateLimitRPS           float64        `json:"rate_limit_rps"`
	RateLimitBurst         int            `json:"rate_limit_burst"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c/-config flags; when
// neither is set, nothing is loaded. Fields absent from the file keep their
// current values. An unreadable or invalid file panics: a config file that
// was explicitly requested must not be silently skipped.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.Env != "" {
		config.Env = c.Env
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CookieValidityDuration.Duration != 0 {
		config.CookieValidityDuration = c.CookieValidityDuration.Duration
	}
	if c.PublicBaseURL != "" {
		config.PublicBaseURL = c.PublicBaseURL
	}
	if c.SendGridAPIKey != "" {
		config.SendGridAPIKey = c.SendGridAPIKey
	}
	if c.FromName != "" {
		config.FromName = c.FromName
	}
	if c.FromEmail != "" {
		config.FromEmail = c.FromEmail
	}
	if c.RateLimitRPS != 0 {
		config.RateLimitRPS = c.RateLimitRPS
	}
	if c.RateLimitBurst != 0 {
		config.RateLimitBurst = c.RateLimitBurst
	}
}
