// Package misc keeps program identity: name, version and build hash.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -X stylesnoop/misc.version=... -X stylesnoop/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

const appName = "stylesnoop"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from. When not provided
// at link time it falls back to VCS information embedded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
