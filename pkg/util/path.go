package util

import (
	"path/filepath"
	"strings"
)

// SafeFilePath cleans a relative path and reports whether it stays inside
// the current directory. Absolute paths are rejected.
func SafeFilePath(p string) (string, bool) {
	cleaned, ok := SafeFilePathAllowAbsolute(p)
	if !ok || filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SafeFilePathAllowAbsolute is SafeFilePath but accepts absolute paths.
// A relative path is still rejected when it climbs above its start.
func SafeFilePathAllowAbsolute(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	if strings.Contains(p, `\`) && strings.Contains(p, "..") {
		return "", false
	}

	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}
