// Package config loads and validates container configuration.
//
// It uses Viper to read an injector.yml file and INJECTOR_* environment
// variables, optionally seeded from a .env file through godotenv, and
// validates the result with validator struct tags.
//
// # Usage
//
//	cfg, err := config.Load("injector")
//	if err != nil {
//	    return err
//	}
//	c, err := di.NewFromConfig(cfg)
//
// Environment variables use underscore-separated paths, for example
// INJECTOR_CYCLE_CHECK=first_edge or INJECTOR_LOGGING_LEVEL=debug.
package config
