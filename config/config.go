package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Gateway  GatewayConfig
	Database DatabaseConfig
	App      AppSettings
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string
	JWTExpirationHours int
}

type GatewayConfig struct {
	BaseURL string
	APIKey  string
	// ClientAccountID is the environment fallback tenant, used only when a
	// request carries no tenant header or query parameter.
	ClientAccountID string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type AppSettings struct {
	Name         string
	Version      string
	DraftFlushMs int
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Enable reading from OS environment variables as fallback/override
	viper.AutomaticEnv()

	// Explicitly bind environment variables for robustness
	viper.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("GATEWAY_BASE_URL")
	viper.BindEnv("GATEWAY_API_KEY")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("APP_NAME", "TrueStock")
	viper.SetDefault("APP_VERSION", "dev")
	viper.SetDefault("DRAFT_FLUSH_MS", 800)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Gateway: GatewayConfig{
			BaseURL:         viper.GetString("GATEWAY_BASE_URL"),
			APIKey:          viper.GetString("GATEWAY_API_KEY"),
			ClientAccountID: viper.GetString("GATEWAY_CLIENT_ACCOUNT_ID"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		App: AppSettings{
			Name:         viper.GetString("APP_NAME"),
			Version:      viper.GetString("APP_VERSION"),
			DraftFlushMs: viper.GetInt("DRAFT_FLUSH_MS"),
		},
	}

	log.Printf("Configuration loaded successfully:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Gateway Base URL: %s", func() string {
		if AppConfig.Gateway.BaseURL != "" {
			return AppConfig.Gateway.BaseURL
		}
		return "NOT SET"
	}())
	log.Printf("- Gateway API Key: %s", func() string {
		if AppConfig.Gateway.APIKey != "" {
			return "SET"
		}
		return "NOT SET"
	}())
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
}
