package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/qqconnect/errors"
)

func TestValidatorRequired(t *testing.T) {
	assert.False(t, New().Required("app_id", "100200").HasErrors())
	assert.True(t, New().Required("app_id", "").HasErrors())
	assert.True(t, New().Required("app_id", "   ").HasErrors())
}

func TestValidatorHTTPURL(t *testing.T) {
	assert.False(t, New().HTTPURL("redirect_uri", "").HasErrors(), "empty is allowed")
	assert.False(t, New().HTTPURL("redirect_uri", "https://example.com/cb").HasErrors())
	assert.True(t, New().HTTPURL("redirect_uri", "example.com/cb").HasErrors())
	assert.True(t, New().HTTPURL("redirect_uri", "ftp://example.com").HasErrors())
}

func TestValidatorVar(t *testing.T) {
	assert.False(t, New().Var("redirect_uri", "", "omitempty,url").HasErrors())
	assert.False(t, New().Var("redirect_uri", "https://example.com/cb", "omitempty,url").HasErrors())

	v := New().Var("redirect_uri", "not a url", "omitempty,url")
	require.True(t, v.HasErrors())
	assert.Equal(t, FieldError{Field: "redirect_uri", Message: "must be a valid URL"}, v.Errors()[0])
	assert.True(t, errors.HasCode(v.Err(), errors.ErrCodeInvalidConfig))
}

func TestValidatorOneOf(t *testing.T) {
	assert.False(t, New().OneOf("response_type", "code", "code", "token").HasErrors())

	v := New().OneOf("response_type", "id_token", "code", "token")
	require.True(t, v.HasErrors())
	assert.Equal(t, "must be one of: code token", v.Errors()[0].Message)
}

func TestValidatorErr(t *testing.T) {
	assert.NoError(t, New().Err())

	err := New().
		Required("app_id", "").
		Check(false, "http.timeout", "must not be negative").
		Err()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfig))
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "app_id: is required")
	assert.Contains(t, err.Error(), "http.timeout: must not be negative")

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	fields, ok := appErr.Details["fields"].([]FieldError)
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

type httpSection struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

type sampleConfig struct {
	AppID       string      `mapstructure:"app_id" validate:"required"`
	RedirectURI string      `mapstructure:"redirect_uri" validate:"omitempty,url"`
	Display     string      `mapstructure:"display" validate:"omitempty,oneof=pc mobile"`
	HTTP        httpSection `mapstructure:"http"`
	NoTag       string      `validate:"max=3"`
}

func TestValidateStruct_Valid(t *testing.T) {
	cfg := sampleConfig{AppID: "100200", RedirectURI: "https://example.com/cb", Display: "pc"}
	assert.NoError(t, ValidateStruct(cfg))
}

func TestValidateStruct_FieldNamesUseConfigKeys(t *testing.T) {
	cfg := sampleConfig{
		RedirectURI: "not a url",
		Display:     "tv",
		HTTP:        httpSection{Timeout: -time.Second},
		NoTag:       "toolong",
	}
	err := ValidateStruct(&cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfig))

	appErr, _ := errors.AsAppError(err)
	fields := appErr.Details["fields"].([]FieldError)
	byField := make(map[string]string, len(fields))
	for _, f := range fields {
		byField[f.Field] = f.Message
	}

	assert.Equal(t, "is required", byField["app_id"])
	assert.Equal(t, "must be a valid URL", byField["redirect_uri"])
	assert.Equal(t, "must be one of: pc mobile", byField["display"])
	assert.Equal(t, "must be at least 0", byField["http.timeout"])
	assert.Equal(t, "must be at most 3", byField["no_tag"])
}

func TestMerge(t *testing.T) {
	structErr := ValidateStruct(sampleConfig{})
	v := New().Merge(structErr).Merge(nil).Required("app_key", "")
	assert.Len(t, v.Errors(), 2)

	v = New().Merge(errors.MissingField("x"))
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "missing required field: x", v.Errors()[0].Message)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "app_id", toSnakeCase("AppId"))
	assert.Equal(t, "no_tag", toSnakeCase("NoTag"))
	assert.Equal(t, "name", toSnakeCase("name"))
}
