// Package version provides build version information and the default
// User-Agent sent with every API call.
//
// Version and commit may be set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/qqconnect/version.Version=1.0.0"
package version
