// Package loader registers the HTTP features of the service.
//
// A feature is a self-contained slice of the API (inventory, importer,
// purchasing, integrity) that reports whether its dependencies are present
// and mounts its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features that need the database report themselves disabled when it could
// not be reached, so the server still starts and serves the integrity and
// health routes. LoadAll stops at the first feature that fails to load.
package loader
