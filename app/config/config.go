package config

import (
	"os"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Logs   LogConfig
	DB     MongoConfig
	Stripe StripeConfig
}

type LogConfig struct {
	Style string
	Level string
}

type MongoConfig struct {
	URI      string
	Database string
}

type StripeConfig struct {
	SecretKey         string
	WebhookSecret     string
	PriceIDProMonthly string
	PriceIDProYearly  string
	FrontendURL       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		DB: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: os.Getenv("MONGO_DB"),
		},
		Stripe: StripeConfig{
			SecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceIDProMonthly: os.Getenv("STRIPE_PRICE_ID_PRO_MONTHLY"),
			PriceIDProYearly:  os.Getenv("STRIPE_PRICE_ID_PRO_YEARLY"),
			FrontendURL:       os.Getenv("FRONTEND_URL"),
		},
	}

	return cfg, nil
}
