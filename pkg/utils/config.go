package utils

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Events   EventsConfig
	Cron     CronConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	MaxConns int32
}

type StripeConfig struct {
	SecretKey string `validate:"required"`
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type EventsConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type CronConfig struct {
	Secret             string `validate:"required"`
	CaptureLeadHours   int
	CaptureWindowHours int
}

// CaptureLead is how far ahead of a booking's start time the capture
// batch reaches (payments are captured ~24h before the appointment).
func (c CronConfig) CaptureLead() time.Duration {
	return time.Duration(c.CaptureLeadHours) * time.Hour
}

// CaptureSpan is the width of the capture window. It is wider than the
// run cadence so a missed run cannot permanently skip a booking.
func (c CronConfig) CaptureSpan() time.Duration {
	return time.Duration(c.CaptureWindowHours) * time.Hour
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CAPTURE_LEAD_HOURS", 24)
	viper.SetDefault("CAPTURE_WINDOW_HOURS", 6)
	viper.SetDefault("EVENTS_EXCHANGE", "salon.events")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Events: EventsConfig{
			Enabled:  viper.GetBool("EVENTS_ENABLED"),
			URL:      viper.GetString("EVENTS_URL"),
			Exchange: viper.GetString("EVENTS_EXCHANGE"),
		},
		Cron: CronConfig{
			Secret:             viper.GetString("CRON_SECRET"),
			CaptureLeadHours:   viper.GetInt("CAPTURE_LEAD_HOURS"),
			CaptureWindowHours: viper.GetInt("CAPTURE_WINDOW_HOURS"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}
