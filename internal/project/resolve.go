package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Markers are the entries whose presence identifies a Flutter project root.
var Markers = []string{PubspecFile, "lib", "android", "ios"}

// ResolveOptions controls name resolution.
type ResolveOptions struct {
	// Strict disables the directory-name fallback.
	Strict bool
}

// Resolution is the outcome of resolving a project name.
type Resolution struct {
	Name string
	// Warning is set when the directory-name fallback was used.
	Warning string
	// FromDir reports whether Name is the directory basename.
	FromDir bool
}

// Resolve determines the project name for the project rooted at dir.
func Resolve(dir string, opts ResolveOptions) (*Resolution, error) {
	pubspecPath := filepath.Join(dir, PubspecFile)
	name, err := ReadName(pubspecPath)
	if err == nil {
		return &Resolution{Name: name}, nil
	}
	if opts.Strict {
		return nil, err
	}

	if !isFlutterProject(dir) {
		return nil, ErrProjectNotRecognized
	}

	abs, absErr := filepath.Abs(dir)
	if absErr != nil {
		return nil, fmt.Errorf("resolving project directory: %w", absErr)
	}
	base := filepath.Base(abs)

	warning := fmt.Sprintf("Could not parse pubspec.yaml, using directory name '%s' as project name.", base)
	if _, statErr := os.Stat(pubspecPath); os.IsNotExist(statErr) {
		warning = fmt.Sprintf("pubspec.yaml not found, using directory name '%s' as project name.", base)
	}

	return &Resolution{Name: base, Warning: warning, FromDir: true}, nil
}

func isFlutterProject(dir string) bool {
	for _, marker := range Markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
