// Package config loads the service configuration from config.yml and .env
// files via Viper, with environment variables taking precedence. Secrets
// (the speech subscription key, storage credentials) are expected from the
// environment, not the config file.
package config
