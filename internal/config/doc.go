// Package config provides environment-based configuration.
//
// Maps environment variables to the Config struct, applies defaults for
// optional settings, and validates required fields at startup.
package config
