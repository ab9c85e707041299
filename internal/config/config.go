package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string

	// Local photo storage; files are served under /uploads.
	UploadDir string

	// Base URL used when building invite links for the accept-invite page.
	AppBaseURL string

	// Brevo transactional email. Empty API key disables dispatch.
	BrevoAPIKey string
	MailFrom    string

	// Twilio SMS for service alerts. All three must be set to enable dispatch.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	FrontendURLEndsWith string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./public/uploads"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		UploadDir:           uploadDir,
		AppBaseURL:          appBaseURL(viper.GetString("APP_BASE_URL")),
		BrevoAPIKey:         viper.GetString("BREVO_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		TwilioAccountSID:    viper.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:     viper.GetString("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:    viper.GetString("TWILIO_PHONE_NUMBER"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}

// SMSConfigured reports whether Twilio credentials are complete.
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func appBaseURL(s string) string {
	s = strings.TrimSpace(strings.TrimRight(s, "/"))
	if s == "" {
		return "http://localhost:3000"
	}
	return s
}
