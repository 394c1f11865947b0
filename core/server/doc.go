// Package server holds the HTTP server configuration.
//
// The start command uses it to bind the read-only catalog API. The API key
// is enforced by the auth middleware; an empty key disables the check.
package server
