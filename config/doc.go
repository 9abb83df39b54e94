// Package config loads handler configuration with Viper.
//
// A YAML file is located next to the function (cmd/<name>/config.yml,
// config/config.yml or ./config.yml), a .env file is loaded when present,
// and environment variables override file values. Nested keys map from
// underscore-separated variables, so RESPONSE_STATUS_CODE sets
// response.status_code.
//
// # Usage
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	}
//	var cfg Config
//	err := config.LoadConfig("orders", &cfg)
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
package config
