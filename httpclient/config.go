package httpclient

import (
	"time"

	"github.com/kbukum/qqconnect/validation"
	"github.com/kbukum/qqconnect/version"
)

// Config configures the HTTP client.
type Config struct {
	// Timeout bounds each call. Zero leaves timing to the transport and the context.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=0"`

	// UserAgent is sent on every request. Defaults to version.UserAgent().
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// StrictStatus turns a non-2xx response without an API error into an *Error.
	// By default such bodies are decoded like any other response.
	StrictStatus bool `yaml:"strict_status" mapstructure:"strict_status"`

	// TLS customizes the default transport. Ignored with WithHTTPClient or WithTransport.
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	v := validation.New().Merge(validation.ValidateStruct(c))
	for name := range c.Headers {
		v.Check(name != "", "headers", "header names must not be empty")
	}
	if err := c.TLS.Validate(); err != nil {
		v.AddError("tls", err.Error())
	}
	return v.Err()
}
