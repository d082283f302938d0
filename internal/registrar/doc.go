// Package registrar edits the project's dependency-injection setup file so a
// newly generated presenter is imported and registered.
//
// The edit is a text scan, not a Dart parse: it finds the setup function by
// pattern, walks braces to the end of its body and inserts the registration
// before the first ';' in that body. Braces inside string literals or
// comments are not recognized. Every failure to find an insertion point is
// reported as ErrPatchSkipped and leaves the file untouched.
package registrar
