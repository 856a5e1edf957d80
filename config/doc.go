// Package config loads service configuration with Viper.
//
// Values come from a YAML file (config.yml) found in standard locations, an
// optional .env file loaded with godotenv, and prefixed environment variables.
// Environment variables win over file values.
//
// # Usage
//
//	var cfg request.Config
//	err := config.LoadConfig("booking-gateway", &cfg)
//
// With service name "booking-gateway" the variable BOOKING_GATEWAY_CLIENT_BASE_URL
// maps to the key client.base_url.
package config
