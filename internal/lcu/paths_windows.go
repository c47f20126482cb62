//go:build windows

package lcu

import (
	"os"
	"path/filepath"
)

// DefaultLockfilePaths returns the primary (game client install) and secondary
// (Riot Client config) lockfile locations.
func DefaultLockfilePaths() []string {
	localAppData := os.Getenv("LOCALAPPDATA")
	return []string{
		filepath.Join(`C:\Riot Games`, "League of Legends", "lockfile"),
		filepath.Join(localAppData, "Riot Games", "Riot Client", "Config", "lockfile"),
	}
}
