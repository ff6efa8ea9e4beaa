package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInlineLeaf(t *testing.T) {
	l := NewList("pos").AppendToken("1.27").AppendToken("2.54")
	assert.Equal(t, "(pos 1.27 2.54)", l.String())
}

func TestWriteNested(t *testing.T) {
	pad := NewList("pad").AppendToken("abc")
	pad.NewChild("side").AppendToken("top")
	pad.NewChild("size").AppendToken("2.0").AppendToken("2.0")

	want := "(pad abc\n  (side top)\n  (size 2.0 2.0))"
	assert.Equal(t, want, pad.String())
}

func TestQuotedStrings(t *testing.T) {
	l := NewList("name").AppendString(`Dual OpAmp "LM358"`)
	out := l.String()
	assert.Equal(t, `(name "Dual OpAmp \"LM358\"")`, out)

	parsed, err := Parse(out)
	require.NoError(t, err)
	toks := parsed.Tokens()
	require.Len(t, toks, 1)
	assert.Equal(t, `Dual OpAmp "LM358"`, toks[0])
}

func TestRoundTrip(t *testing.T) {
	doc := NewList("footprint").AppendToken("f00")
	doc.NewChild("name").AppendString("TO-220")
	pad := doc.NewChild("pad")
	pad.AppendToken("p1")
	pad.NewChild("side").AppendToken("tht")
	pad.NewChild("pos").AppendToken("0.0").AppendToken("0.0")

	parsed, err := Parse(doc.String())
	require.NoError(t, err)
	assert.Equal(t, doc.String(), parsed.String(), "canonical form is stable")
}

func TestParseWhitespaceAndComments(t *testing.T) {
	in := `
; a footprint fragment
(pad  p1
   (side   bottom) ; placed on the solder side
   (rot 0.0))
`
	l, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, "pad", l.Name)

	side, ok := l.Child("side")
	require.True(t, ok)
	assert.Equal(t, []string{"bottom"}, side.Tokens())
}

func TestChildAccessors(t *testing.T) {
	l, err := Parse("(fp (pad a) (pad b) (name c))")
	require.NoError(t, err)

	pads := l.Children("pad")
	require.Len(t, pads, 2)

	_, ok := l.Child("drill")
	assert.False(t, ok)

	tok, ok := pads[1].Token(0)
	require.True(t, ok)
	assert.Equal(t, "b", tok)

	_, ok = pads[1].Token(5)
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no opener", "pad"},
		{"unterminated list", "(pad (side top)"},
		{"unterminated string", `(name "abc`},
		{"trailing content", "(pad)(pad)"},
		{"bad escape", `(name "a\q")`},
		{"missing name", "()"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.Error(t, err)
			var serr *SyntaxError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("(pad\n  (side top\n")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Line)
}
