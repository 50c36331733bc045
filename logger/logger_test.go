package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line, "expected a log line")
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &out))
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	require.NotNil(t, l)
	assert.Equal(t, "test-svc", l.name)
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: FormatJSON, Output: "discard"}, "test")
	require.NotNil(t, l, "expected logger to be created even with invalid level")
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug").WithComponent("httpclient")

	l.Debug("GET", Fields(FieldEndpoint, "https://graph.qq.com/oauth2.0/me", FieldStatus, 200))

	out := decodeLine(t, &buf)
	assert.Equal(t, "debug", out["level"])
	assert.Equal(t, "GET", out["message"])
	assert.Equal(t, "httpclient", out[FieldComponent])
	assert.Equal(t, "https://graph.qq.com/oauth2.0/me", out[FieldEndpoint])
	assert.EqualValues(t, 200, out[FieldStatus])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").
		WithFields(map[string]interface{}{FieldOpenID: "OPENID"}).
		WithError(fmt.Errorf("boom"))

	l.Error("call failed")

	out := decodeLine(t, &buf)
	assert.Equal(t, "OPENID", out[FieldOpenID])
	assert.Equal(t, "boom", out["error"])
}

func TestNop(t *testing.T) {
	l := Nop()
	// must not panic
	l.Info("ignored")
	l.WithComponent("x").Error("ignored")
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(func() { globalLogger = nil })

	globalLogger = nil
	require.NotNil(t, GetGlobalLogger())

	custom := Nop()
	SetGlobalLogger(custom)
	assert.Same(t, custom, GetGlobalLogger())

	Init(Config{Level: "debug", Format: FormatJSON, Output: "discard", Name: "svc"})
	assert.Equal(t, "svc", GetGlobalLogger().name)
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.True(t, cfg.Timestamp)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"discard output", Config{Level: "info", Format: "json", Output: "discard"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored-non-string-key", "dangling")
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "two"}, f)
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("exchange", fmt.Errorf("bad code"))
	assert.Equal(t, "exchange", ef[FieldOperation])
	assert.Equal(t, "bad code", ef[FieldError])

	df := DurationFields("GET", 1500*time.Millisecond)
	assert.EqualValues(t, 1500, df[FieldDuration])
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", Mask(""))
	assert.Equal(t, "***", Mask("abcd"))
	assert.Equal(t, "C8F2***", Mask("C8F28A60779B94518AF86E1FE8D92312"))
}
