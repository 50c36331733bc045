// Package validation validates configuration structs.
//
// Struct tag validation uses go-playground/validator. Field names in error
// messages come from the mapstructure tag, falling back to the url and json
// tags, so a failure reads the same way as the key the user set:
//
//	type Config struct {
//	    AppID string `mapstructure:"app_id" validate:"required"`
//	}
//	err := validation.ValidateStruct(cfg) // "app_id: is required"
//
// Checks that tags cannot express are collected programmatically:
//
//	v := validation.New()
//	v.Check(cfg.Timeout >= 0, "http.timeout", "must not be negative")
//	err := v.Err()
package validation
