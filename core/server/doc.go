// Package server holds the HTTP server configuration of `fnum serve`.
//
// The Config struct defines the listen port, the optional API key checked by
// the auth middleware, and the request timeout.
package server
