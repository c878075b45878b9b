// Package middleware groups the fiber middleware registered in front of the
// features.
//
//   - rayid tags every request with an X-Ray-ID, reusing the caller's when
//     it sends one.
//   - auth rejects requests without the configured X-API-Key. An empty key
//     turns the check off for local use.
//
// Order matters: rayid comes first so auth failures are logged with a ray
// id; /health, /metrics and /swagger are mounted before auth.
package middleware
