package storage

import "time"

// Config holds the object storage connection and bucket settings.
type Config struct {
	// Endpoint is host:port, optionally prefixed with http:// or https://.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the imports/ and exports/ folders.
	Bucket string `mapstructure:"bucket" default:"par"`
	Region string `mapstructure:"region" default:""`
	// CreateBucket creates the bucket on start when it is missing.
	CreateBucket   bool `mapstructure:"create_bucket" default:"false"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the connection timeout, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
