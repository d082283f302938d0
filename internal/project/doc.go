// Package project reads the host Flutter project's pubspec.yaml. Its main job
// is resolving the project name used in generated import paths, with a
// directory-name fallback when the pubspec cannot be read. It also loads the
// version and SDK constraint, and validates the pubspec against an embedded
// JSON Schema for the doctor command.
package project
