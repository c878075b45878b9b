package config

import (
	"reflect"
	"strings"

	"par-manager/core/database"
	"par-manager/core/logger"
	"par-manager/core/server"
	"par-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Import holds defaults for bulk imports.
	Import ImportConfig `mapstructure:"import"`
	// Report holds purchase-list settings.
	Report ReportConfig `mapstructure:"report"`
}

// ImportConfig holds defaults for bulk imports.
type ImportConfig struct {
	// DefaultMode is the dedup mode used when a caller does not pick one (update, skip).
	DefaultMode string `mapstructure:"default_mode" default:"update"`
	// Archive uploads every committed source file to object storage.
	Archive bool `mapstructure:"archive" default:"true"`
	// Prefix is the bucket folder for archived import files.
	Prefix string `mapstructure:"prefix" default:"imports/"`
}

// ReportConfig holds purchase-list settings.
type ReportConfig struct {
	// CacheTTLSeconds is how long a catalog snapshot is reused. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// ExportPrefix is the bucket folder for exported purchase lists.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports/"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
