// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface, so it does not care whether a
// value came from the YAML file, a .env file, or the process environment.
//
// Environment variables override file values: the key "server.address.http"
// is read from SERVER_ADDRESS_HTTP when that variable is set.
package pkgconfig
