// Package playsrc locates playground tutorial pages on disk
// and parses their markup into raw content segments.
//
// A playground page is a Swift source file annotated with markup comments:
// '//:' lines and '/*: ... */' ranges hold prose,
// and everything else is top-level example code.
package playsrc

// PageRef is a reference to a playground page.
//
// It holds the information necessary to load a page,
// but doesn't yet load it.
type PageRef struct {
	// Title of the page for display.
	Title string

	// Path is the logical /-separated path of the page
	// in the generated output.
	Path string

	// File is the location of the page source on disk.
	File string
}
