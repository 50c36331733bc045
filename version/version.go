package version

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the import path used to find this module in build info.
const ModulePath = "github.com/kbukum/qqconnect"

// UserAgentProduct is the product token of the default User-Agent.
const UserAgentProduct = "qqconnect-go"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns version information. Values not set via -ldflags are taken
// from the binary's build info when available.
func Get() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info, buildInfo)
	}

	info.IsRelease = info.Version != "dev" && !info.IsDirty && !strings.Contains(info.Version, "dirty")
	return info
}

func applyBuildInfo(info *Info, buildInfo *debug.BuildInfo) {
	info.GoVersion = buildInfo.GoVersion

	if info.Version == "dev" {
		if v := moduleVersion(buildInfo); v != "" {
			info.Version = v
		}
	}

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		}
	}
}

// moduleVersion finds the version this module was built at, either as the
// main module or as a dependency of it.
func moduleVersion(buildInfo *debug.BuildInfo) string {
	if buildInfo.Main.Path == ModulePath && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	for _, dep := range buildInfo.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return ""
}

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return UserAgentProduct + "/" + Get().Version
}
