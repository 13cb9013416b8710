// Package highlight renders code snippets into highlighted HTML.
// It uses the Chroma library to do this work.
//
// Snippets are represented as [Code] values,
// which are comprised of one or more [Span]s.
// Spans carry rendering instructions,
// such as highlighting a region of code
// or reporting a failed operation visibly.
package highlight
