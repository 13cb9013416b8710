package lint

import (
	"fmt"

	"braces.dev/errtrace"
)

// ScanSnippet checks that a code snippet is lexically well formed
// in isolation: brackets balance, and string literals and comments
// terminate before the snippet ends.
//
// This is a lexical scan, not a parse.
// It understands line comments, nested block comments,
// single-line and multiline string literals, escapes,
// and string interpolation.
func ScanSnippet(src string) error {
	s := scanner{src: src, line: 1}
	return errtrace.Wrap(s.code(0))
}

type scanner struct {
	src  string
	pos  int
	line int

	// Stack of open brackets and the lines they opened on.
	open []opener
}

type opener struct {
	b    byte
	line int
}

// code scans source text until EOF,
// or, if until is non-zero,
// until that closing bracket appears with no open brackets pending.
func (s *scanner) code(until byte) error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++

		case c == '/' && s.peek(1) == '/':
			s.skipLine()

		case c == '/' && s.peek(1) == '*':
			if err := s.blockComment(); err != nil {
				return err
			}

		case c == '"':
			if err := s.stringLit(); err != nil {
				return err
			}

		case c == '(' || c == '[' || c == '{':
			s.open = append(s.open, opener{b: c, line: s.line})
			s.pos++

		case c == ')' || c == ']' || c == '}':
			if len(s.open) == 0 {
				if c == until {
					s.pos++
					return nil
				}
				return fmt.Errorf("line %d: unexpected %q", s.line, string(c))
			}
			top := s.open[len(s.open)-1]
			if closerOf(top.b) != c {
				return fmt.Errorf("line %d: %q closed by %q", s.line, string(top.b), string(c))
			}
			s.open = s.open[:len(s.open)-1]
			s.pos++

		default:
			s.pos++
		}
	}

	if until != 0 {
		return fmt.Errorf("line %d: unterminated string interpolation", s.line)
	}
	if len(s.open) > 0 {
		top := s.open[len(s.open)-1]
		return fmt.Errorf("line %d: unclosed %q", top.line, string(top.b))
	}
	return nil
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

// blockComment consumes a '/* ... */' comment, which may nest.
func (s *scanner) blockComment() error {
	start := s.line
	s.pos += 2
	depth := 1
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '\n':
			s.line++
			s.pos++
		case s.src[s.pos] == '/' && s.peek(1) == '*':
			depth++
			s.pos += 2
		case s.src[s.pos] == '*' && s.peek(1) == '/':
			depth--
			s.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			s.pos++
		}
	}
	return fmt.Errorf("line %d: unterminated block comment", start)
}

// stringLit consumes a string literal, single-line or multiline,
// recursing into any \( ... ) interpolations.
func (s *scanner) stringLit() error {
	start := s.line

	multiline := s.peek(1) == '"' && s.peek(2) == '"'
	if multiline {
		s.pos += 3
	} else {
		s.pos++
	}

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			if s.peek(1) == '(' {
				s.pos += 2
				// Interpolations hold arbitrary expressions,
				// scanned with a fresh bracket stack.
				sub := scanner{src: s.src, pos: s.pos, line: s.line}
				if err := sub.code(')'); err != nil {
					return err
				}
				s.pos, s.line = sub.pos, sub.line
			} else {
				s.pos += 2
			}

		case c == '"':
			if multiline {
				if s.peek(1) == '"' && s.peek(2) == '"' {
					s.pos += 3
					return nil
				}
				s.pos++
			} else {
				s.pos++
				return nil
			}

		case c == '\n':
			if !multiline {
				return fmt.Errorf("line %d: unterminated string literal", start)
			}
			s.line++
			s.pos++

		default:
			s.pos++
		}
	}

	return fmt.Errorf("line %d: unterminated string literal", start)
}

func closerOf(b byte) byte {
	switch b {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	default:
		return 0
	}
}
