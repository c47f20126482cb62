//go:build darwin

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
		filepath.Join("/Applications", "League of Legends.app", "Contents", "LoL", "lockfile"),
		filepath.Join(home, ".config", "Riot Games", "Riot Client", "Config", "lockfile"),
	}
}
