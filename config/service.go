package config

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/lambdakit/errors"
	"github.com/kbukum/lambdakit/logger"
)

// ServiceConfig contains the fields every handler needs.
// Projects extend this by embedding it in their own config structs.
type ServiceConfig struct {
	Name        string         `yaml:"name" mapstructure:"name"`
	Environment string         `yaml:"environment" mapstructure:"environment"`
	Version     string         `yaml:"version" mapstructure:"version"`
	Debug       bool           `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config  `yaml:"logging" mapstructure:"logging"`
	Response    ResponseConfig `yaml:"response" mapstructure:"response"`
}

// GetServiceConfig returns the base ServiceConfig.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Response.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Response.Validate(); err != nil {
		return fmt.Errorf("config.response: %w", err)
	}
	return nil
}

// ResponseConfig configures response handlers.
type ResponseConfig struct {
	// StatusCode is the initial status of every response.
	StatusCode int `yaml:"status_code" mapstructure:"status_code"`
	// Errors declares static error codes keyed by code name.
	Errors map[string]ErrorConfig `yaml:"errors" mapstructure:"errors"`
}

// ErrorConfig is a static error descriptor declared in configuration.
// Viper lowercases map keys, so the key is registered upper-cased and Code
// defaults to it.
type ErrorConfig struct {
	Code    string `yaml:"code" mapstructure:"code"`
	Message string `yaml:"message" mapstructure:"message"`
	Detail  any    `yaml:"detail" mapstructure:"detail"`
}

// ApplyDefaults applies default values to response configuration.
func (c *ResponseConfig) ApplyDefaults() {
	if c.StatusCode == 0 {
		c.StatusCode = http.StatusOK
	}
}

// Validate validates response configuration.
func (c *ResponseConfig) Validate() error {
	if c.StatusCode < 100 || c.StatusCode > 599 {
		return fmt.Errorf("status_code must be a valid HTTP status (got: %d)", c.StatusCode)
	}
	for name, e := range c.Errors {
		if e.Message == "" {
			return fmt.Errorf("errors.%s.message is required", name)
		}
	}
	return nil
}

// Registry converts the declared errors into custom registry entries.
// It returns nil when no errors are declared so handlers keep using the
// defaults only.
func (c *ResponseConfig) Registry() errors.Registry {
	if len(c.Errors) == 0 {
		return nil
	}
	reg := make(errors.Registry, len(c.Errors))
	for key, e := range c.Errors {
		name := strings.ToUpper(key)
		code := e.Code
		if code == "" {
			code = name
		}
		reg[errors.ErrorCode(name)] = errors.Static(errors.Descriptor{
			Code:    errors.ErrorCode(code),
			Message: e.Message,
			Detail:  e.Detail,
		})
	}
	return reg
}
