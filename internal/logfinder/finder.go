// Package logfinder provides Minecraft client log file detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnvLogFile is the environment variable name for specifying the log file.
const EnvLogFile = "BWOVERLAY_LOG_FILE"

// LatestLog is the file name the client writes the current session to.
const LatestLog = "latest.log"

// ErrLogFileNotFound is returned when no readable log file is found.
var ErrLogFileNotFound = errors.New("log file not found")

// DefaultLogFiles returns candidate log files in priority order for the
// current OS.
func DefaultLogFiles() []string {
	return defaultLogFiles(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func defaultLogFiles(goos string, getenv func(string) string, home func() (string, error)) []string {
	switch goos {
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			// Fallback: try to construct from USERPROFILE
			if userProfile := getenv("USERPROFILE"); userProfile != "" {
				appData = filepath.Join(userProfile, "AppData", "Roaming")
			}
		}
		if appData == "" {
			return nil
		}
		mc := filepath.Join(appData, ".minecraft", "logs")
		return []string{
			filepath.Join(mc, "blclient", "minecraft", LatestLog),
			filepath.Join(mc, LatestLog),
		}
	case "darwin":
		dir, err := home()
		if err != nil || dir == "" {
			return nil
		}
		return []string{
			filepath.Join(dir, "Library", "Application Support", "minecraft", "logs", "blclient", "minecraft", LatestLog),
			filepath.Join(dir, "Library", "Application Support", "minecraft", "logs", LatestLog),
		}
	default:
		dir, err := home()
		if err != nil || dir == "" {
			return nil
		}
		return []string{
			filepath.Join(dir, ".minecraft", "logs", "blclient", "minecraft", LatestLog),
			filepath.Join(dir, ".minecraft", "logs", LatestLog),
		}
	}
}

// FindLogFile returns the client log file to read.
//
// Priority:
//  1. explicit (if non-empty)
//  2. BWOVERLAY_LOG_FILE environment variable
//  3. Auto-detect from DefaultLogFiles()
//
// A directory is accepted in place of a file and resolved to its latest.log.
// The returned path has symlinks resolved for consistency.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateLogFile(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s", ErrLogFileNotFound, explicit)
	}

	if envFile := os.Getenv(EnvLogFile); envFile != "" {
		if resolved := resolveAndValidateLogFile(envFile); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid file", ErrLogFileNotFound, EnvLogFile)
	}

	for _, path := range DefaultLogFiles() {
		if resolved := resolveAndValidateLogFile(path); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrLogFileNotFound
}

// resolveAndValidateLogFile resolves symlinks and checks that the path is a
// regular file. Returns the resolved path if valid, empty string otherwise.
func resolveAndValidateLogFile(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		path = filepath.Join(path, LatestLog)
		if info, err = os.Stat(path); err != nil {
			return ""
		}
	}
	if !info.Mode().IsRegular() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		// Broken or unreadable link chain; keep the original path.
		resolved = path
	}
	return resolved
}
