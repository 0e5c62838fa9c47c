// Package config loads and validates application settings from
// environment variables, giving the rest of the code type-safe access to
// the server port, log level, database URL, and hashing cost.
package config
