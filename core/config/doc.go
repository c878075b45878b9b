// Package config provides configuration management for PAR Manager.
//
// It utilizes Viper for loading configuration from environment variables,
// with an optional .env file overlaid through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, body limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Import: default dedup mode and source archiving
//   - Report: catalog snapshot TTL and export folder
//
// Every field carries a `default` tag; environment keys are the upper-cased
// dotted path with dots replaced by underscores (REPORT_CACHE_TTL_SECONDS).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
