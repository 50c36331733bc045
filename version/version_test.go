package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestore() func() {
	origVersion, origCommit := Version, GitCommit
	return func() {
		Version = origVersion
		GitCommit = origCommit
	}
}

func TestGetWithLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"

	info := Get()
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "abc1234", info.GitCommit)
}

func TestGetDevIsNotRelease(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"

	info := Get()
	assert.NotEmpty(t, info.Version)
	if info.Version == "dev" {
		assert.False(t, info.IsRelease)
	}
}

func TestApplyBuildInfo(t *testing.T) {
	info := &Info{Version: "dev"}
	applyBuildInfo(info, &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Main:      debug.Module{Path: "example.com/app", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/rs/zerolog", Version: "v1.34.0"},
			{Path: ModulePath, Version: "v0.4.1"},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "go1.25.0", info.GoVersion)
	assert.Equal(t, "v0.4.1", info.Version)
	assert.Equal(t, "0123456", info.GitCommit)
	assert.True(t, info.IsDirty)
}

func TestApplyBuildInfoKeepsLdflags(t *testing.T) {
	info := &Info{Version: "1.0.0", GitCommit: "fixed"}
	applyBuildInfo(info, &debug.BuildInfo{
		Main:     debug.Module{Path: ModulePath, Version: "v9.9.9"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
	})
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "fixed", info.GitCommit)
}

func TestModuleVersion(t *testing.T) {
	assert.Equal(t, "v1.0.0", moduleVersion(&debug.BuildInfo{
		Main: debug.Module{Path: ModulePath, Version: "v1.0.0"},
	}))
	assert.Empty(t, moduleVersion(&debug.BuildInfo{
		Main: debug.Module{Path: ModulePath, Version: "(devel)"},
	}))
	assert.Equal(t, "v2.0.0", moduleVersion(&debug.BuildInfo{
		Deps: []*debug.Module{{Path: ModulePath, Version: "v1.0.0", Replace: &debug.Module{Version: "v2.0.0"}}},
	}))
}

func TestUserAgent(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	assert.Equal(t, "qqconnect-go/1.2.0", UserAgent())
	assert.True(t, strings.HasPrefix(UserAgent(), UserAgentProduct+"/"))
}
