package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store mirror state.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Use a dot-directory in the user's home on all platforms
	return filepath.Join(home, ".mstdn-rss2bsky-post"), nil
}

// DBPath returns the full path to the posted-links ledger database.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "ledger.db"), nil
}

// LockPath returns the full path to the run lock file.
func LockPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "run.lock"), nil
}
