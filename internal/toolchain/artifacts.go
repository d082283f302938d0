package toolchain

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Build output locations, relative to the project root.
const (
	APKDir  = "build/app/outputs/flutter-apk"
	AABDir  = "build/app/outputs/bundle/release"
	APKFile = APKDir + "/app-release.apk"
)

// OutputDirs are created before any command runs.
var OutputDirs = []string{APKDir, AABDir}

// EnsureOutputDirs creates the artifact directories under root.
func EnsureOutputDirs(root string) error {
	for _, dir := range OutputDirs {
		p := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(p, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", p, err)
		}
	}
	return nil
}

// ArtifactSize returns the size of the file at path in megabytes with two
// decimals, e.g. "18.42 MB".
func ArtifactSize(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	mb := float64(info.Size()) / 1048576
	return humanize.FormatFloat("#,###.##", mb) + " MB", nil
}
