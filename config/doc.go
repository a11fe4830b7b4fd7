// Package config loads service configuration with Viper.
//
// LoadConfig reads config.yml, overlays environment variables (optionally
// restricted to a prefix) and a .env file, then unmarshals into a struct
// using mapstructure tags:
//
//	var cfg Config
//	err := config.LoadConfig("primesd", &cfg, config.WithEnvPrefix("PRIMES"))
//
// ServiceConfig carries the name, environment, version and logging settings
// shared by every binary.
package config
