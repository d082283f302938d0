// Package ui holds the terminal theme shared by the FlutterKit commands: the
// colors used for headings, warnings and errors, and the glyphs the progress
// spinner draws. A Theme is built once per invocation and passed to whatever
// renders output; nothing here is global.
package ui
