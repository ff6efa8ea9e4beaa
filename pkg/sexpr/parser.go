package sexpr

import (
	"fmt"
	"strings"
)

// SyntaxError reports where parsing failed.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sexpr: %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse decodes a single S-expression document. Trailing whitespace is
// allowed; any other trailing content is an error.
func Parse(input string) (*List, error) {
	p := &parser{input: input, line: 1, col: 1}
	p.skipSpace()

	root, err := p.parseList()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected content after document")
	}
	return root, nil
}

type parser struct {
	input string
	pos   int
	line  int
	col   int
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: p.line, Column: p.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.input[p.pos] }

func (p *parser) advance() byte {
	c := p.input[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.advance()
		case ';':
			// Comment to end of line.
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *parser) parseList() (*List, error) {
	if p.eof() || p.peek() != '(' {
		return nil, p.errorf("expected '('")
	}
	p.advance()
	p.skipSpace()

	name, err := p.parseBareToken()
	if err != nil {
		return nil, err
	}
	list := NewList(name)

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated list %q", name)
		}

		switch p.peek() {
		case ')':
			p.advance()
			return list, nil
		case '(':
			child, err := p.parseList()
			if err != nil {
				return nil, err
			}
			list.AppendChild(child)
		case '"':
			s, err := p.parseQuoted()
			if err != nil {
				return nil, err
			}
			list.AppendString(s)
		default:
			tok, err := p.parseBareToken()
			if err != nil {
				return nil, err
			}
			list.AppendToken(tok)
		}
	}
}

func (p *parser) parseBareToken() (string, error) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '(' || c == ')' || c == '"' || c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		p.advance()
	}
	if p.pos == start {
		return "", p.errorf("expected token")
	}
	return p.input[start:p.pos], nil
}

func (p *parser) parseQuoted() (string, error) {
	p.advance() // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.advance()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			e := p.advance()
			switch e {
			case '"', '\\':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			default:
				return "", p.errorf("unknown escape \\%c", e)
			}
		default:
			b.WriteByte(c)
		}
	}
}
