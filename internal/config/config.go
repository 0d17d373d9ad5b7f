package config

import (
	"os"
)

// Fallback defaults. Everything that would otherwise be inlined in request
// logic lives here so a missing env var is visible in one place.
const (
	DefaultPort           = "8080"
	DefaultCurrency       = "usd"
	DefaultFrontendOrigin = "http://localhost:5173"
	DefaultJWTIssuer      = "quantumcloud"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
}

type OAuthConfig struct {
	Google OAuthProviderConfig
	GitHub OAuthProviderConfig
	// RedirectBaseURL is this service's public base URL; callbacks land on
	// {base}/api/auth/oauth/{provider}/callback.
	RedirectBaseURL string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

type ExportStorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Config struct {
	Port          string
	DatabaseURL   string
	FrontendURL   string
	JWT           JWTConfig
	Stripe        StripeConfig
	OAuth         OAuthConfig
	Email         EmailConfig
	ExportStorage ExportStorageConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", DefaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FrontendURL: getEnv("FRONTEND_URL", DefaultFrontendOrigin),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", DefaultJWTIssuer),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			Currency:      getEnv("STRIPE_CURRENCY", DefaultCurrency),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:     os.Getenv("EMAIL_FROM_NAME"),
		},
	}

	cfg.OAuth.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.OAuth.Google.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.OAuth.GitHub.ClientID = os.Getenv("GITHUB_CLIENT_ID")
	cfg.OAuth.GitHub.ClientSecret = os.Getenv("GITHUB_CLIENT_SECRET")
	cfg.OAuth.RedirectBaseURL = getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:"+cfg.Port)

	cfg.ExportStorage.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.ExportStorage.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.ExportStorage.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.ExportStorage.Bucket = os.Getenv("R2_BUCKET")
	cfg.ExportStorage.PublicURL = os.Getenv("R2_PUBLIC_URL")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
