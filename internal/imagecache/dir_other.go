//go:build !windows

package imagecache

import (
	"os"
	"path/filepath"
)

// DefaultDir returns $HOME/.local/share/fr.lelanation.companion/image-cache.
func DefaultDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return filepath.Join(h, ".local", "share", appID, "image-cache")
	}
	return "image-cache"
}
