// Package fsutil resolves dictionary and output paths for the nsw binaries.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names used for path resolution.
const (
	envCacheDir = "CACHE_DIR"
)

const (
	appName                = "nsw-normalizer"
	cacheDirName           = "cache"
	dictDirName            = "dict"
	dotCache               = ".cache"
	defaultDirPermissions  = 0o750
	invalidCharReplacement = "_"
	outputExtension        = ".txt"
)

// Text file extensions accepted as input.
const (
	extTXT = ".txt"
	extMD  = ".md"
)

const (
	errFmtFailedToCreateDir           = "failed to create directory %s: %w"
	errFmtCouldNotResolveAbsolutePath = "could not resolve absolute path for %q: %w"
	errFmtErrorCheckingPath           = "error checking dictionary path %q: %w"
	errFmtDictionaryNotFound          = "%w: %s"
)

// ErrDictionaryNotFound is returned when a dictionary file cannot be located.
var ErrDictionaryNotFound = errors.New("dictionary not found")

var filenameReplacer = strings.NewReplacer(
	"<", invalidCharReplacement,
	">", invalidCharReplacement,
	":", invalidCharReplacement,
	"\"", invalidCharReplacement,
	"/", invalidCharReplacement,
	"\\", invalidCharReplacement,
	"|", invalidCharReplacement,
	"?", invalidCharReplacement,
	"*", invalidCharReplacement,
)

// GetCacheDir returns the application's cache directory. CACHE_DIR overrides the
// per-user default.
func GetCacheDir() string {
	if cacheDir := os.Getenv(envCacheDir); cacheDir != "" {
		return cacheDir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, cacheDirName)
	}

	return filepath.Join(homeDir, dotCache, appName)
}

// EnsureDir creates path and its parents when missing.
func EnsureDir(path string) error {
	err := os.MkdirAll(path, defaultDirPermissions)
	if err != nil {
		return fmt.Errorf(errFmtFailedToCreateDir, path, err)
	}

	return nil
}

// resolveSinglePath reports whether path exists and returns its absolute form.
// A stat failure other than "not found" is returned as an error.
func resolveSinglePath(path string) (string, bool, error) {
	_, statErr := os.Stat(path)
	if statErr == nil {
		absPath, errAbs := filepath.Abs(path)
		if errAbs != nil {
			return "", false, fmt.Errorf(errFmtCouldNotResolveAbsolutePath, path, errAbs)
		}

		return absPath, true, nil
	}

	if !errors.Is(statErr, os.ErrNotExist) {
		return "", false, fmt.Errorf(errFmtErrorCheckingPath, path, statErr)
	}

	return "", false, nil
}

// GetDictionaryPath resolves name as given, then under ./dict, then under the
// cache directory's dict folder.
func GetDictionaryPath(name string) (string, error) {
	candidatePaths := []string{
		name,
		filepath.Join(dictDirName, name),
		filepath.Join(GetCacheDir(), dictDirName, name),
	}

	for _, path := range candidatePaths {
		resolvedPath, found, err := resolveSinglePath(path)
		if err != nil {
			return "", err
		}

		if found {
			return resolvedPath, nil
		}
	}

	return "", fmt.Errorf(errFmtDictionaryNotFound, ErrDictionaryNotFound, name)
}

// IsValidTextFile checks if a filename has a plain text extension.
func IsValidTextFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case extTXT, extMD:
		return true
	default:
		return false
	}
}

// SanitizeFilename replaces characters that are invalid in most filesystems.
func SanitizeFilename(filename string) string {
	return filenameReplacer.Replace(filename)
}

// OutputPath names the file written for input under dir, e.g.
// OutputPath("out", "notes/ch1.txt", "_norm") is "out/ch1_norm.txt".
func OutputPath(dir, input, suffix string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, SanitizeFilename(stem)+suffix+outputExtension)
}
