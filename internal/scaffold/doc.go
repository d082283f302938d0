// Package scaffold generates a presentation-layer page from embedded
// templates. It powers the "page" command, producing the presenter, UI state
// and view files under lib/presentation/<page>/ together with the empty
// widgets/ directory.
package scaffold
