// Package cli defines the Cobra command trees for the flutterkit and
// create-page binaries. Each file registers one command with the root; the
// toolchain commands are generated from toolchain.Commands. Commands only
// handle flags, output and exit status and delegate the work to the internal
// packages.
package cli
