// Package adb shells out to the Android platform-tools adb binary: locating
// it, checking device connectivity, and running one command at a time.
package adb

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrADBNotFound is returned when no adb binary can be located.
var ErrADBNotFound = errors.New("adb not found")

// adbPaths returns the list of paths to search for adb on the current platform.
func adbPaths() []string {
	var paths []string

	// SDK locations take priority over system-wide installs.
	for _, env := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"} {
		if root := os.Getenv(env); root != "" {
			paths = append(paths, filepath.Join(root, "platform-tools", "adb"))
		}
	}

	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		if home != "" {
			paths = append(paths, filepath.Join(home, "Library/Android/sdk/platform-tools/adb"))
		}
		paths = append(paths,
			"/opt/homebrew/bin/adb",
			"/usr/local/bin/adb",
		)
	case "linux":
		if home != "" {
			paths = append(paths, filepath.Join(home, "Android/Sdk/platform-tools/adb"))
		}
		paths = append(paths,
			"/usr/bin/adb",
			"/usr/local/bin/adb",
			"/opt/android-sdk/platform-tools/adb",
		)
	}

	// Fall back to $PATH lookup.
	return append(paths, "adb")
}

// Find searches for an adb binary on the system. It first checks the
// DROIDCTL_ADB environment variable, then SDK and common installation paths,
// then $PATH. Returns the path to the executable or ErrADBNotFound.
func Find() (string, error) {
	if envPath := os.Getenv("DROIDCTL_ADB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		// Env var set but path invalid - still return error with context
		return "", ErrADBNotFound
	}

	for _, path := range adbPaths() {
		found, err := exec.LookPath(path)
		if err == nil {
			return found, nil
		}
	}

	return "", ErrADBNotFound
}
