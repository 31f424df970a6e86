// Package misc keeps program identification, values are set at link time.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	version = "dev"
	gitHash = "unknown"
	appName = "csssel"
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name, executable name is used when available.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}
