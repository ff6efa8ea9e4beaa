package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Length is a distance stored as integer micrometers. Integer fixed-point
// keeps geometry exact: serializing and re-parsing a Length never drifts the
// way binary floats do.
type Length int64

// Millimeters builds a Length from whole millimeters.
func Millimeters(mm int64) Length {
	return Length(mm * 1000)
}

// Micrometers returns the raw micrometer value.
func (l Length) Micrometers() int64 { return int64(l) }

// String renders the length as millimeters, e.g. "1.27".
func (l Length) String() string { return FormatMillimeters(l) }

// Point is a 2D position. Positions handed to the editor are assumed to be
// grid-snapped already by the input layer.
type Point struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", FormatMillimeters(p.X), FormatMillimeters(p.Y))
}

// Size is a rectangular extent.
type Size struct {
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%s x %s", FormatMillimeters(s.Width), FormatMillimeters(s.Height))
}

// Angle is a rotation stored as integer microdegrees, normalized to the
// half-open range [0°, 360°).
type Angle int64

const fullTurn Angle = 360_000_000

// Degrees builds a normalized Angle from whole degrees.
func Degrees(deg int64) Angle {
	return Angle(deg * 1_000_000).Normalized()
}

// Normalized maps the angle into [0°, 360°).
func (a Angle) Normalized() Angle {
	a %= fullTurn
	if a < 0 {
		a += fullTurn
	}
	return a
}

// Add returns the normalized sum of two angles.
func (a Angle) Add(b Angle) Angle {
	return (a + b).Normalized()
}

// Microdegrees returns the raw microdegree value.
func (a Angle) Microdegrees() int64 { return int64(a) }

// String renders the angle as degrees, e.g. "90.0".
func (a Angle) String() string { return FormatDegrees(a) }

// FormatMillimeters renders a Length as a decimal millimeter string with no
// trailing zero noise ("2.0", "0.8", "1.27"). Pure integer arithmetic.
func FormatMillimeters(l Length) string {
	return formatFixed(int64(l), 3)
}

// ParseMillimeters parses a decimal millimeter string into a Length. Fails
// with a ValidationError on malformed input or precision finer than a
// micrometer; values are never silently rounded.
func ParseMillimeters(s string) (Length, error) {
	v, err := parseFixed(s, 3)
	if err != nil {
		return 0, NewValidationError("length", "%q: %v", s, err)
	}
	return Length(v), nil
}

// FormatDegrees renders an Angle as a decimal degree string ("90.0").
func FormatDegrees(a Angle) string {
	return formatFixed(int64(a), 6)
}

// ParseDegrees parses a decimal degree string into a normalized Angle. Fails
// with a ValidationError on malformed input or precision finer than a
// microdegree.
func ParseDegrees(s string) (Angle, error) {
	v, err := parseFixed(s, 6)
	if err != nil {
		return 0, NewValidationError("angle", "%q: %v", s, err)
	}
	return Angle(v).Normalized(), nil
}

// formatFixed renders value/10^scale as a decimal string. At least one
// fractional digit is always emitted so round-tripped files stay stable
// ("2.0" rather than "2").
func formatFixed(v int64, scale int) string {
	div := int64(1)
	for i := 0; i < scale; i++ {
		div *= 10
	}

	neg := v < 0
	if neg {
		v = -v
	}
	whole := v / div
	frac := v % div

	fracStr := strconv.FormatInt(frac, 10)
	for len(fracStr) < scale {
		fracStr = "0" + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}

	out := strconv.FormatInt(whole, 10) + "." + fracStr
	if neg {
		out = "-" + out
	}
	return out
}

// parseFixed parses a decimal string into an integer scaled by 10^scale.
// Extra fractional digits are rejected unless they are zeros.
func parseFixed(s string, scale int) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	wholeStr, fracStr, hasFrac := strings.Cut(s, ".")
	if wholeStr == "" && (!hasFrac || fracStr == "") {
		return 0, fmt.Errorf("no digits")
	}
	if wholeStr == "" {
		wholeStr = "0"
	}

	whole, err := strconv.ParseInt(wholeStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad integer part: %v", err)
	}

	var frac int64
	if hasFrac {
		for i, c := range fracStr {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("bad fractional part")
			}
			if i >= scale {
				if c != '0' {
					return 0, fmt.Errorf("precision exceeds 1/10^%d resolution", scale)
				}
				continue
			}
			frac = frac*10 + int64(c-'0')
		}
		for i := len(fracStr); i < scale; i++ {
			frac *= 10
		}
	}

	div := int64(1)
	for i := 0; i < scale; i++ {
		div *= 10
	}
	v := whole*div + frac
	if neg {
		v = -v
	}
	return v, nil
}
