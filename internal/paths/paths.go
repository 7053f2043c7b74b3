package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "measurectl"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the cache directory for this tool.
//
//	Linux:   ~/.cache/measurectl
//	macOS:   ~/Library/Caches/measurectl
func Cache() string {
	return filepath.Join(xdg.CacheHome, toolName)
}

// Path to the local buildx layer cache.
//
//	Linux:   ~/.cache/measurectl/buildx
//	macOS:   ~/Library/Caches/measurectl/buildx
func BuildCache() string {
	return filepath.Join(Cache(), "buildx")
}
