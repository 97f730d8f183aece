package objectstore

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultRegion        = "us-east-1"
	defaultPresignExpiry = 15 * time.Minute
)

// Config describes an S3-compatible bucket.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PathStyle addresses objects as endpoint/bucket/key, which MinIO needs.
	PathStyle     bool
	PresignExpiry time.Duration
}

// LoadConfig reads the S3_* environment variables. An empty S3_BUCKET disables the store.
func LoadConfig() (Config, error) {
	cfg := Config{
		Bucket:        os.Getenv("S3_BUCKET"),
		Region:        os.Getenv("S3_REGION"),
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		PathStyle:     true,
		PresignExpiry: defaultPresignExpiry,
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if v := os.Getenv("S3_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid S3_PATH_STYLE %q: %w", v, err)
		}
		cfg.PathStyle = b
	}
	if v := os.Getenv("S3_PRESIGN_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid S3_PRESIGN_EXPIRY %q", v)
		}
		cfg.PresignExpiry = d
	}
	return cfg, nil
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}
