package qq

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/qqconnect/config"
	"github.com/kbukum/qqconnect/errors"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{AppID: testAppID, AppKey: testAppKey}
	cfg.ApplyDefaults()

	assert.Equal(t, "code", cfg.ResponseType)
	assert.Equal(t, "graph.qq.com", cfg.Domain)
	assert.Equal(t, "https://graph.qq.com/oauth2.0/", cfg.AuthURL)
	assert.Equal(t, "https://graph.qq.com/", cfg.APIURL)
	assert.NotEmpty(t, cfg.HTTP.UserAgent)
	assert.Zero(t, cfg.HTTP.Timeout)
}

func TestConfig_ApplyDefaultsCustomDomain(t *testing.T) {
	cfg := Config{Domain: "openapi.example.com", APIURL: "https://api.example.com/v3"}
	cfg.ApplyDefaults()
	assert.Equal(t, "https://openapi.example.com/oauth2.0/", cfg.AuthURL)
	assert.Equal(t, "https://api.example.com/v3/", cfg.APIURL)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{AppID: testAppID, AppKey: testAppKey, RedirectURI: testRedirect}
	valid.ApplyDefaults()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing app id", func(c *Config) { c.AppID = "" }, "app_id"},
		{"missing app key", func(c *Config) { c.AppKey = "" }, "app_key"},
		{"bad redirect", func(c *Config) { c.RedirectURI = "not a url" }, "redirect_uri"},
		{"bad auth url", func(c *Config) { c.AuthURL = "graph.qq.com/oauth2.0/" }, "auth_url"},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, "http.timeout"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{AppKey: testAppKey})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfig))
}

func TestNew_RedirectOptional(t *testing.T) {
	c, err := New(Config{AppID: testAppID, AppKey: testAppKey})
	require.NoError(t, err)
	assert.Equal(t, testAppID, c.AppID())
	assert.Empty(t, c.Config().RedirectURI)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("QQ_APP_ID", "300400")
	t.Setenv("QQ_APP_KEY", "env-secret")
	t.Setenv("QQ_REDIRECT_URI", testRedirect)
	t.Setenv("QQ_HTTP_TIMEOUT", "3s")
	t.Setenv("QQ_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfig(config.WithConfigFile(filepath.Join(t.TempDir(), "absent.yml")))
	require.NoError(t, err)

	assert.Equal(t, "300400", cfg.AppID)
	assert.Equal(t, "env-secret", cfg.AppKey)
	assert.Equal(t, testRedirect, cfg.RedirectURI)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://graph.qq.com/oauth2.0/", cfg.AuthURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("QQ_APP_ID", "")
	t.Setenv("QQ_APP_KEY", "")

	_, err := LoadConfig(config.WithConfigFile(filepath.Join(t.TempDir(), "absent.yml")))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}
