package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpSection struct {
	Timeout   time.Duration     `mapstructure:"timeout"`
	UserAgent string            `mapstructure:"user_agent"`
	Headers   map[string]string `mapstructure:"headers"`
}

type logSection struct {
	Level string `mapstructure:"level"`
}

type testConfig struct {
	AppID       string      `mapstructure:"app_id"`
	AppKey      string      `mapstructure:"app_key"`
	RedirectURI string      `mapstructure:"redirect_uri"`
	HTTP        httpSection `mapstructure:"http"`
	Logging     logSection  `mapstructure:",squash"`
	Hook        func()      `mapstructure:"-"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKeys(t *testing.T) {
	keys := Keys(&testConfig{})
	assert.ElementsMatch(t, []string{
		"app_id", "app_key", "redirect_uri",
		"http.timeout", "http.user_agent",
		"level",
	}, keys)
}

func TestKeys_NonStruct(t *testing.T) {
	assert.Nil(t, Keys("not a struct"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "QQ_HTTP_TIMEOUT", EnvName("QQ", "http.timeout"))
	assert.Equal(t, "QQ_APP_ID", EnvName("qq", "app_id"))
	assert.Equal(t, "APP_ID", EnvName("", "app_id"))
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
app_id: "100200"
app_key: secret
http:
  timeout: 5s
  user_agent: test-agent
`)

	var cfg testConfig
	require.NoError(t, LoadConfig("qq", &cfg, WithConfigFile(path), WithEnvPrefix("QQTEST")))

	assert.Equal(t, "100200", cfg.AppID)
	assert.Equal(t, "secret", cfg.AppKey)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "test-agent", cfg.HTTP.UserAgent)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "app_id: from-file\napp_key: file-key\n")

	t.Setenv("QQTEST_APP_KEY", "env-key")
	t.Setenv("QQTEST_HTTP_TIMEOUT", "2s")
	t.Setenv("QQTEST_LEVEL", "debug")

	var cfg testConfig
	require.NoError(t, LoadConfig("qq", &cfg, WithConfigFile(path), WithEnvPrefix("QQTEST")))

	assert.Equal(t, "from-file", cfg.AppID)
	assert.Equal(t, "env-key", cfg.AppKey)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "QQENVFILE_REDIRECT_URI=https://example.com/callback\n")
	t.Cleanup(func() { _ = os.Unsetenv("QQENVFILE_REDIRECT_URI") })

	var cfg testConfig
	require.NoError(t, LoadConfig("qq", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")),
		WithEnvFile(envPath),
		WithEnvPrefix("QQENVFILE"),
	))

	assert.Equal(t, "https://example.com/callback", cfg.RedirectURI)
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	require.NoError(t, err, "a missing config file is not an error")
	assert.Empty(t, cfg.AppID)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "app_id: [unterminated\n")

	var cfg testConfig
	assert.Error(t, LoadConfig("qq", &cfg, WithConfigFile(path)))
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/qq/config.yml": true,
		"./config.yml":        true,
		"./.env":              true,
	}}
	resolver := &Resolver{FileSystem: fs}

	files := resolver.ResolveFiles("qq", LoaderConfig{})
	assert.Equal(t, "./cmd/qq/config.yml", files.ConfigFile)
	assert.Equal(t, "./.env", files.EnvFile)
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("qq", LoaderConfig{ConfigFile: "/etc/qq.yml", EnvFile: "/etc/qq.env"})
	assert.Equal(t, "/etc/qq.yml", files.ConfigFile)
	assert.Equal(t, "/etc/qq.env", files.EnvFile)
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	for _, opt := range []LoaderOption{
		WithFileSystem(fs),
		WithConfigFile("/path/to/config.yml"),
		WithEnvFile("/path/to/.env"),
		WithEnvPrefix("QQ"),
	} {
		opt(&lc)
	}
	assert.Same(t, fs, lc.FileSystem)
	assert.Equal(t, "/path/to/config.yml", lc.ConfigFile)
	assert.Equal(t, "/path/to/.env", lc.EnvFile)
	assert.Equal(t, "QQ", lc.EnvPrefix)
}
