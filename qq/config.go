package qq

import (
	"strings"

	"github.com/kbukum/qqconnect/config"
	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/validation"
)

const (
	// DefaultDomain is the QQ Connect service host.
	DefaultDomain = "graph.qq.com"
	// DefaultResponseType is the response_type requested at authorization.
	DefaultResponseType = "code"
	// EnvPrefix prefixes the environment variables read by LoadConfig.
	EnvPrefix = "QQ"

	// redirectURIRule applies to Config.RedirectURI and to per-call overrides.
	redirectURIRule = "omitempty,url"
)

// Config holds the application credentials and endpoints.
type Config struct {
	AppID        string `yaml:"app_id" mapstructure:"app_id" validate:"required"`
	AppKey       string `yaml:"app_key" mapstructure:"app_key" validate:"required"`
	RedirectURI  string `yaml:"redirect_uri" mapstructure:"redirect_uri" validate:"omitempty,url"`
	ResponseType string `yaml:"response_type" mapstructure:"response_type"`

	// Domain is used to derive AuthURL and APIURL when they are empty.
	Domain  string `yaml:"domain" mapstructure:"domain"`
	AuthURL string `yaml:"auth_url" mapstructure:"auth_url"`
	APIURL  string `yaml:"api_url" mapstructure:"api_url"`

	HTTP    httpclient.Config `yaml:"http" mapstructure:"http"`
	Logging logger.Config     `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.ResponseType == "" {
		c.ResponseType = DefaultResponseType
	}
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
	if c.AuthURL == "" {
		c.AuthURL = "https://" + c.Domain + "/oauth2.0/"
	}
	if c.APIURL == "" {
		c.APIURL = "https://" + c.Domain + "/"
	}
	c.AuthURL = withTrailingSlash(c.AuthURL)
	c.APIURL = withTrailingSlash(c.APIURL)
	c.HTTP.ApplyDefaults()
	if c.loggingSet() {
		c.Logging.ApplyDefaults()
	}
}

// loggingSet reports whether a logging section was configured.
func (c *Config) loggingSet() bool {
	return c.Logging != (logger.Config{})
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	v := validation.New().Merge(validation.ValidateStruct(c))
	v.HTTPURL("auth_url", c.AuthURL)
	v.HTTPURL("api_url", c.APIURL)
	if c.loggingSet() {
		v.Merge(c.Logging.Validate())
	}
	return v.Err()
}

// LoadConfig reads the configuration from config.yml and QQ_* environment
// variables (e.g. QQ_APP_ID, QQ_HTTP_TIMEOUT), applies defaults and validates it.
func LoadConfig(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	opts = append([]config.LoaderOption{config.WithEnvPrefix(EnvPrefix)}, opts...)
	if err := config.LoadConfig("qq", cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
