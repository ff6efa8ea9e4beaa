/*
Package sexpr implements the S-expression document format used for catalog
primitives: parenthesized lists with a leading name, bare value tokens,
quoted strings, and nested child lists.

	(pad 7d6ba94e-6751-41bb-b51f-6dcb9c9c9f5b
	  (side top)
	  (shape round)
	  (pos 1.27 2.54)
	  (rot 90.0)
	  (size 2.0 2.0)
	  (drill 0.8))

The package is a pure codec: it has no opinion about field meaning. Decoding
into typed values and validating them is the caller's job.
*/
package sexpr

import (
	"strings"
)

// List is one parenthesized node: a name followed by ordered items, each
// either a value token or a child list.
type List struct {
	Name  string
	items []item
}

type item struct {
	token  string
	quoted bool
	child  *List
}

// NewList creates an empty list with the given name.
func NewList(name string) *List {
	return &List{Name: name}
}

// AppendToken appends a bare value token.
func (l *List) AppendToken(tok string) *List {
	l.items = append(l.items, item{token: tok})
	return l
}

// AppendString appends a string value, always quoted on output.
func (l *List) AppendString(s string) *List {
	l.items = append(l.items, item{token: s, quoted: true})
	return l
}

// AppendChild appends an existing list as a child.
func (l *List) AppendChild(child *List) *List {
	l.items = append(l.items, item{child: child})
	return l
}

// NewChild creates a child list with the given name, appends it and returns
// it for population.
func (l *List) NewChild(name string) *List {
	child := NewList(name)
	l.AppendChild(child)
	return child
}

// Child returns the first child list with the given name.
func (l *List) Child(name string) (*List, bool) {
	for _, it := range l.items {
		if it.child != nil && it.child.Name == name {
			return it.child, true
		}
	}
	return nil, false
}

// Children returns all child lists with the given name, in order.
func (l *List) Children(name string) []*List {
	var out []*List
	for _, it := range l.items {
		if it.child != nil && it.child.Name == name {
			out = append(out, it.child)
		}
	}
	return out
}

// Tokens returns the value tokens of this list, in order, skipping child
// lists.
func (l *List) Tokens() []string {
	var out []string
	for _, it := range l.items {
		if it.child == nil {
			out = append(out, it.token)
		}
	}
	return out
}

// Token returns the i-th value token.
func (l *List) Token(i int) (string, bool) {
	toks := l.Tokens()
	if i < 0 || i >= len(toks) {
		return "", false
	}
	return toks[i], true
}

// String renders the canonical form. Lists whose items are all tokens render
// on one line; lists with child lists put each child on its own indented
// line, which keeps leaf nodes like (pos 1.27 2.54) readable.
func (l *List) String() string {
	var b strings.Builder
	l.write(&b, 0)
	return b.String()
}

func (l *List) write(b *strings.Builder, depth int) {
	b.WriteByte('(')
	b.WriteString(l.Name)

	if l.inline() {
		for _, it := range l.items {
			b.WriteByte(' ')
			writeToken(b, it)
		}
		b.WriteByte(')')
		return
	}

	indent := strings.Repeat(" ", (depth+1)*2)
	for _, it := range l.items {
		if it.child == nil {
			b.WriteByte(' ')
			writeToken(b, it)
		}
	}
	for _, it := range l.items {
		if it.child != nil {
			b.WriteByte('\n')
			b.WriteString(indent)
			it.child.write(b, depth+1)
		}
	}
	b.WriteByte(')')
}

func (l *List) inline() bool {
	for _, it := range l.items {
		if it.child != nil {
			return false
		}
	}
	return true
}

func writeToken(b *strings.Builder, it item) {
	if !it.quoted && !needsQuoting(it.token) {
		b.WriteString(it.token)
		return
	}
	b.WriteByte('"')
	for _, r := range it.token {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func needsQuoting(tok string) bool {
	if tok == "" {
		return true
	}
	return strings.ContainsAny(tok, "() \t\n\r\"\\")
}
