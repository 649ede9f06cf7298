// Package version holds the build version, set with
// -ldflags "-X github.com/raoulx24/rdb-retention/internal/version.Version=...".
package version

var Version = "0.1.0-dev"
