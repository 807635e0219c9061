package navtree

import (
	"bytes"
)

// statement is one `var NAME = value;` assignment located in the source.
// value holds the raw literal, still to be decoded.
type statement struct {
	name  string
	value []byte
}

// scanner splits exchange-format text into assignments. It understands just
// enough of the surrounding script syntax (var/let/const, comments, string
// quoting, bracket balance) to find each literal, and it enforces the nesting
// limit before any recursive decoding happens.
type scanner struct {
	src        []byte
	pos        int
	limit      int // node depth limit, for error reporting
	maxBracket int
}

func scanStatements(src []byte, maxDepth int) ([]statement, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	s := &scanner{
		src:   src,
		limit: maxDepth,
		// A node at depth d sits at bracket depth 2d+2; its (possibly empty)
		// children list adds one more.
		maxBracket: 2*maxDepth + 3,
	}

	var stmts []statement
	for {
		if err := s.skipSpace(); err != nil {
			return nil, err
		}
		if s.eof() {
			return stmts, nil
		}

		// A bare literal stands alone: `[ [ "A", "a.html", null ] ]`.
		if len(stmts) == 0 && s.peek() == '[' {
			val, err := s.literal("")
			if err != nil {
				return nil, err
			}
			if err := s.endStatement(); err != nil {
				return nil, err
			}
			if !s.eof() {
				return nil, malformed("", "unexpected content after literal at offset %d", s.pos)
			}
			return []statement{{value: val}}, nil
		}

		name, err := s.assignment()
		if err != nil {
			return nil, err
		}
		val, err := s.literal(name)
		if err != nil {
			return nil, err
		}
		if err := s.endStatement(); err != nil {
			return nil, err
		}
		stmts = append(stmts, statement{name: name, value: val})
	}
}

func (s *scanner) eof() bool  { return s.pos >= len(s.src) }
func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

// skipSpace skips whitespace and // or /* */ comments.
func (s *scanner) skipSpace() error {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case c == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.pos++
			}
		case c == '/' && s.peekAt(1) == '*':
			start := s.pos
			end := bytes.Index(s.src[s.pos+2:], []byte("*/"))
			if end < 0 {
				return malformed("", "unterminated comment at offset %d", start)
			}
			s.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

// endStatement consumes an optional trailing semicolon.
func (s *scanner) endStatement() error {
	if err := s.skipSpace(); err != nil {
		return err
	}
	if !s.eof() && s.peek() == ';' {
		s.pos++
	}
	return nil
}

// assignment reads `[var|let|const] NAME =` and returns NAME.
func (s *scanner) assignment() (string, error) {
	word := s.ident()
	if word == "var" || word == "let" || word == "const" {
		if err := s.skipSpace(); err != nil {
			return "", err
		}
		word = s.ident()
	}
	if word == "" {
		return "", malformed("", "expected an assignment at offset %d", s.pos)
	}
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	if s.eof() || s.peek() != '=' {
		return "", malformed(word, "expected '=' at offset %d", s.pos)
	}
	s.pos++
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	return word, nil
}

func (s *scanner) ident() string {
	start := s.pos
	for !s.eof() && isIdentByte(s.peek(), s.pos == start) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_' || c == '$':
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// literal returns the raw bytes of the list or string value at the cursor.
func (s *scanner) literal(name string) ([]byte, error) {
	if s.eof() {
		return nil, malformed(name, "missing value")
	}
	start := s.pos
	switch s.peek() {
	case '[':
		if err := s.skipList(name); err != nil {
			return nil, err
		}
	case '"', '\'':
		if err := s.skipString(name); err != nil {
			return nil, err
		}
	default:
		return nil, malformed(name, "unsupported value at offset %d: expected a list or string", start)
	}
	return s.src[start:s.pos], nil
}

func (s *scanner) skipList(name string) error {
	start := s.pos
	depth := 0
	for !s.eof() {
		switch c := s.peek(); c {
		case '[':
			depth++
			if depth > s.maxBracket {
				return &DepthExceededError{Limit: s.limit, Path: pathOrRoot(name)}
			}
			s.pos++
		case ']':
			depth--
			s.pos++
			if depth == 0 {
				return nil
			}
		case '"', '\'':
			if err := s.skipString(name); err != nil {
				return err
			}
		case '/':
			if s.peekAt(1) == '/' || s.peekAt(1) == '*' {
				if err := s.skipSpace(); err != nil {
					return err
				}
				continue
			}
			s.pos++
		default:
			s.pos++
		}
	}
	return malformed(name, "unterminated list starting at offset %d", start)
}

func (s *scanner) skipString(name string) error {
	start := s.pos
	quote := s.peek()
	s.pos++
	for !s.eof() {
		switch s.peek() {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return nil
		case '\n':
			return malformed(name, "unterminated string starting at offset %d", start)
		default:
			s.pos++
		}
	}
	return malformed(name, "unterminated string starting at offset %d", start)
}

func pathOrRoot(name string) string {
	if name == "" {
		return "<root>"
	}
	return name
}
