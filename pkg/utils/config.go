package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Mail     MailConfig
	Event    EventConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type MailConfig struct {
	SendGridAPIKey string
	SenderEmail    string
	SenderName     string
}

// EventConfig describes the single event instance tickets are issued for.
// BannerFile is optional; when set the image is attached to ticket emails.
type EventConfig struct {
	Name       string
	Venue      string
	Date       string
	BannerFile string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("EVENT_NAME", "New Year Bash 2026")
	viper.SetDefault("EVENT_VENUE", "INS KURSURA SUBMARINE LAWN")
	viper.SetDefault("EVENT_DATE", "31 Dec 2025, 7:30 PM - 12:30 AM")
	viper.SetDefault("EVENT_BANNER_FILE", "public/banner.png")

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
			URL:      viper.GetString("DATABASE_URL"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Mail: MailConfig{
			SendGridAPIKey: viper.GetString("SENDGRID_API_KEY"),
			SenderEmail:    viper.GetString("SENDER_EMAIL"),
			SenderName:     viper.GetString("SENDER_NAME"),
		},
		Event: EventConfig{
			Name:       viper.GetString("EVENT_NAME"),
			Venue:      viper.GetString("EVENT_VENUE"),
			Date:       viper.GetString("EVENT_DATE"),
			BannerFile: viper.GetString("EVENT_BANNER_FILE"),
		},
	}

	return config, nil
}
