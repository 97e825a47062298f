// Package config loads and validates the application configuration from
// environment variables and an optional YAML config file, using viper for
// precedence handling and go-playground/validator for structural checks.
package config
