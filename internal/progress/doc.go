// Package progress runs external toolchain steps one at a time while drawing a
// spinner next to the step description. Completion is detected by a blocking
// wait on the child process; a ticker only drives the redraw. Child output is
// captured, never streamed, and success means exit code zero.
package progress
