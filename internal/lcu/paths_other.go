//go:build !windows && !darwin

package lcu

import (
	"os"
	"path/filepath"
)

// DefaultLockfilePaths returns the primary (game client install) and secondary
// (Riot Client config) lockfile locations.
func DefaultLockfilePaths() []string {
	home := os.Getenv("HOME")
	return []string{
		filepath.Join(home, ".local", "share", "League of Legends", "lockfile"),
		filepath.Join(home, ".config", "Riot Games", "Riot Client", "Config", "lockfile"),
	}
}
