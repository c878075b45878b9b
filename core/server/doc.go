// Package server holds the HTTP server configuration and the shared JSON
// error envelope.
//
// The start command builds the fiber app from this config: listen address,
// body limit for import uploads, read timeout, and the API key enforced by
// core/middleware/auth.
package server
