// Package toolchain defines the Flutter, Dart and CocoaPods invocations behind
// each dispatcher command and runs them in order through a progress runner.
// It also knows where build artifacts land, how to report their size, and how
// to read installed toolchain versions for the doctor command.
package toolchain
