//go:build windows

package imagecache

import (
	"os"
	"path/filepath"
)

// DefaultDir returns %LOCALAPPDATA%\fr.lelanation.companion\image-cache.
func DefaultDir() string {
	if d := os.Getenv("LOCALAPPDATA"); d != "" {
		return filepath.Join(d, appID, "image-cache")
	}
	return "image-cache"
}
