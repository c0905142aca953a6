package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the process needs, resolved once at startup and
// passed down explicitly.
type Config struct {
	Addr        string
	DatabaseURL string
	SQLitePath  string
	SecretKey   string

	MediaBackend        string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	AWSRegion           string
	S3Bucket            string

	AdminUsername string
	AdminPassword string
}

func Load() (*Config, error) {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("SQLITE_PATH", "clips.db")
	v.SetDefault("SECRET_KEY", "fallback-secret-key")
	v.SetDefault("MEDIA_BACKEND", "cloudinary")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	cfg := &Config{
		Addr:        v.GetString("ADDR"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		SecretKey:   v.GetString("SECRET_KEY"),

		MediaBackend:        v.GetString("MEDIA_BACKEND"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		AWSRegion:           v.GetString("AWS_REGION"),
		S3Bucket:            v.GetString("S3_BUCKET"),

		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	switch cfg.MediaBackend {
	case "cloudinary", "s3":
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}

	return cfg, nil
}
