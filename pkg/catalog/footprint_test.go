package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

func testPad() Pad {
	return Pad{
		UUID:     uuid.MustParse("7d6ba94e-6751-41bb-b51f-6dcb9c9c9f5b"),
		Side:     SideTop,
		Shape:    ShapeRound,
		Position: domain.Point{X: 1270, Y: 2540},
		Rotation: domain.Degrees(90),
		Size:     domain.Size{Width: 2000, Height: 2000},
		Drill:    800,
	}
}

func TestPadRoundTrip(t *testing.T) {
	pad := testPad()
	require.NoError(t, pad.Validate())

	src := pad.Sexpr().String()
	parsed, err := ParsePad(src)
	require.NoError(t, err)
	assert.Equal(t, pad, parsed)
}

func TestPadSerializedFields(t *testing.T) {
	src := testPad().Sexpr().String()
	assert.Contains(t, src, "(side top)")
	assert.Contains(t, src, "(shape round)")
	assert.Contains(t, src, "(pos 1.27 2.54)")
	assert.Contains(t, src, "(rot 90.0)")
	assert.Contains(t, src, "(size 2.0 2.0)")
	assert.Contains(t, src, "(drill 0.8)")
}

func TestPadParseRejectsUnknownTokens(t *testing.T) {
	base := testPad()

	t.Run("shape", func(t *testing.T) {
		src := strings.Replace(base.Sexpr().String(), "(shape round)", "(shape hexagon)", 1)
		_, err := ParsePad(src)
		require.Error(t, err)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "hexagon")
	})

	t.Run("side", func(t *testing.T) {
		src := strings.Replace(base.Sexpr().String(), "(side top)", "(side middle)", 1)
		_, err := ParsePad(src)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestPadParseRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(Pad) Pad
	}{
		{"zero width", func(p Pad) Pad { p.Size.Width = 0; return p }},
		{"negative height", func(p Pad) Pad { p.Size.Height = -100; return p }},
		{"negative drill", func(p Pad) Pad { p.Drill = -1; return p }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := tc.mutate(testPad()).Sexpr().String()
			_, err := ParsePad(src)
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPadParseRejectsMissingFields(t *testing.T) {
	nodes := map[string]string{
		"side":  "(side top)",
		"shape": "(shape round)",
		"pos":   "(pos 1.27 2.54)",
		"rot":   "(rot 90.0)",
		"size":  "(size 2.0 2.0)",
		"drill": "(drill 0.8)",
	}
	full := testPad().Sexpr().String()
	for field, node := range nodes {
		t.Run(field, func(t *testing.T) {
			src := strings.Replace(full, "\n  "+node, "", 1)
			require.NotEqual(t, full, src, "fixture must contain %s", node)

			_, err := ParsePad(src)
			require.Error(t, err)
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPadZeroDrillAllowed(t *testing.T) {
	pad := testPad()
	pad.Drill = 0
	require.NoError(t, pad.Validate())

	parsed, err := ParsePad(pad.Sexpr().String())
	require.NoError(t, err)
	assert.Equal(t, pad, parsed)
}

func TestFootprintRoundTrip(t *testing.T) {
	fp := &Footprint{
		ID:   uuid.New(),
		Name: "TO-220",
		Pads: []Pad{testPad()},
	}
	require.NoError(t, fp.Validate())

	parsed, err := ParseFootprint(fp.Sexpr().String())
	require.NoError(t, err)
	assert.Equal(t, fp, parsed)
}

func TestFootprintRejectsDuplicatePads(t *testing.T) {
	fp := &Footprint{ID: uuid.New(), Name: "dup", Pads: []Pad{testPad(), testPad()}}
	err := fp.Validate()
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSideShapeTextMarshaling(t *testing.T) {
	type wire struct {
		Side  Side  `json:"side"`
		Shape Shape `json:"shape"`
	}

	b, err := json.Marshal(wire{Side: SideTHT, Shape: ShapeOctagon})
	require.NoError(t, err)
	assert.JSONEq(t, `{"side":"tht","shape":"octagon"}`, string(b))

	var w wire
	require.NoError(t, json.Unmarshal([]byte(`{"side":"bottom","shape":"rect"}`), &w))
	assert.Equal(t, SideBottom, w.Side)
	assert.Equal(t, ShapeRect, w.Shape)

	err = json.Unmarshal([]byte(`{"side":"middle","shape":"rect"}`), &w)
	assert.Error(t, err)
}
