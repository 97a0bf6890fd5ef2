// Package paths provides path helpers for database files, backups and config lookup.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Expand expands environment variables, then a leading ~ to the user's home directory
func Expand(path string) string {
	return ExpandHome(os.ExpandEnv(path))
}

// ExpandHome expands only the ~ prefix to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	return filepath.Join(usr.HomeDir, path[2:])
}

// EnsureDir ensures that the parent directory of the given file path exists
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// IsFile returns true if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
