package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/avibn/lanten-sub001/internal/utils"
)

const AppName = "lanten-server"

// Config holds all application configuration.
type Config struct {
	AppName   string
	AppPort   string
	ClientURL string
	DBUrl     string

	SessionTTL       time.Duration
	InviteSigningKey []byte
	InviteTTL        time.Duration
	SecureCookies    bool

	SendGridAPIKey string
	FromEmail      string
	FromName       string

	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string
	BlobURLExpiry  time.Duration
}

const (
	DefaultSessionTTL    = 5 * 24 * time.Hour
	DefaultInviteTTL     = 7 * 24 * time.Hour
	DefaultBlobURLExpiry = 15 * time.Minute
)

// LoadConfig reads the environment (optionally seeded from a .env
// file) and fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, using process environment")
	}

	cfg := &Config{
		AppName:          AppName,
		AppPort:          requireEnv("APP_PORT"),
		ClientURL:        requireEnv("CLIENT_URL"),
		DBUrl:            requireEnv("DATABASE_URL"),
		SessionTTL:       durationEnv("SESSION_TTL", DefaultSessionTTL),
		InviteSigningKey: []byte(requireEnv("INVITE_SIGNING_KEY")),
		InviteTTL:        durationEnv("INVITE_TTL", DefaultInviteTTL),
		SecureCookies:    boolEnv("SECURE_COOKIES", false),
		SendGridAPIKey:   requireEnv("SENDGRID_API_KEY"),
		FromEmail:        requireEnv("SENDGRID_FROM_EMAIL"),
		FromName:         os.Getenv("SENDGRID_FROM_NAME"),
		S3Region:         requireEnv("S3_REGION"),
		S3Bucket:         requireEnv("S3_BUCKET"),
		S3AccessKey:      requireEnv("S3_ACCESS_KEY"),
		S3SecretKey:      requireEnv("S3_SECRET_KEY"),
		S3BaseEndpoint:   os.Getenv("S3_BASE_ENDPOINT"),
		BlobURLExpiry:    durationEnv("BLOB_URL_EXPIRY", DefaultBlobURLExpiry),
	}

	utils.Logger.Infof("Loaded config for %s", AppName)
	return cfg
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Logger.Fatalf("%s is not a valid duration: %v", key, err)
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Fatalf("%s is not a valid bool: %v", key, err)
	}
	return b
}
