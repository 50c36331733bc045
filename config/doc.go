// Package config loads configuration structs with Viper.
//
// Values come from a YAML file (explicit path or found next to the binary),
// then from environment variables, optionally seeded from a .env file.
// Environment variables are bound for every mapstructure key of the target
// struct, so nested keys work without registering defaults first:
//
//	var cfg qq.Config
//	err := config.LoadConfig("qq", &cfg, config.WithEnvPrefix("QQ"))
//	// QQ_APP_ID, QQ_APP_KEY, QQ_HTTP_TIMEOUT, QQ_LOGGING_LEVEL, ...
package config
