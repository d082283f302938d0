// Package config manages FlutterKit settings: user-level values stored at
// ~/.flutterkit/config.yaml, FLUTTERKIT_* environment variables and an
// optional project-local .flutterkit.env file. Toolchain binary names, the
// registry file location, spinner timing and the composite-command failure
// policy are all read from here.
package config
