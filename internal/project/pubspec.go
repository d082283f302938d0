package project

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// PubspecFile is the project-declaration file read from the project root.
const PubspecFile = "pubspec.yaml"

var (
	// ErrConfigNotFound is returned when pubspec.yaml does not exist.
	ErrConfigNotFound = errors.New("pubspec.yaml not found")
	// ErrFieldNotFound is returned when the name field cannot be located.
	ErrFieldNotFound = errors.New("could not find 'name' field in pubspec.yaml")
	// ErrProjectNotRecognized is returned when the directory has none of the
	// Flutter project markers.
	ErrProjectNotRecognized = errors.New("this doesn't appear to be a Flutter project directory")
)

var nameLine = regexp.MustCompile(`(?m)^name:\s*(.+)$`)

// Pubspec is the subset of pubspec.yaml this tool cares about.
type Pubspec struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Version     string            `yaml:"version,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// SDKConstraint returns the environment.sdk constraint, or "" when unset.
func (p *Pubspec) SDKConstraint() string {
	return p.Environment["sdk"]
}

// Load reads and parses a pubspec.yaml.
func Load(path string) (*Pubspec, error) {
	data, err := readPubspec(path)
	if err != nil {
		return nil, err
	}

	var spec Pubspec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &spec, nil
}

// ReadName returns the top-level name from the pubspec at path. A structured
// parse is tried first; when the document does not parse or has no usable
// name, a line pattern is matched against the raw text.
func ReadName(path string) (string, error) {
	data, err := readPubspec(path)
	if err != nil {
		return "", err
	}

	var spec Pubspec
	if yaml.Unmarshal(data, &spec) == nil {
		if name := strings.TrimSpace(spec.Name); name != "" {
			return name, nil
		}
	}

	if name := matchName(string(data)); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrFieldNotFound)
}

// matchName extracts the name with the textual pattern, stripping quotes.
func matchName(content string) string {
	m := nameLine.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	return strings.Trim(name, `"'`)
}

func readPubspec(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
