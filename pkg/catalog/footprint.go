package catalog

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/sexpr"
)

// Side is the board side a pad sits on.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideTHT
)

var sideTokens = map[Side]string{
	SideTop:    "top",
	SideBottom: "bottom",
	SideTHT:    "tht",
}

func (s Side) String() string {
	if tok, ok := sideTokens[s]; ok {
		return tok
	}
	return "invalid"
}

// ParseSide maps a serialized token to a Side. Unknown tokens fail; they are
// never coerced to a default.
func ParseSide(tok string) (Side, error) {
	for s, t := range sideTokens {
		if t == tok {
			return s, nil
		}
	}
	return 0, domain.NewValidationError("pad side", "unknown token %q", tok)
}

// MarshalText implements encoding.TextMarshaler for YAML and JSON payloads.
func (s Side) MarshalText() ([]byte, error) {
	tok, ok := sideTokens[s]
	if !ok {
		return nil, domain.NewValidationError("pad side", "unrepresentable value %d", s)
	}
	return []byte(tok), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	parsed, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Shape is the pad outline.
type Shape uint8

const (
	ShapeRound Shape = iota
	ShapeRect
	ShapeOctagon
)

var shapeTokens = map[Shape]string{
	ShapeRound:   "round",
	ShapeRect:    "rect",
	ShapeOctagon: "octagon",
}

func (s Shape) String() string {
	if tok, ok := shapeTokens[s]; ok {
		return tok
	}
	return "invalid"
}

// ParseShape maps a serialized token to a Shape.
func ParseShape(tok string) (Shape, error) {
	for s, t := range shapeTokens {
		if t == tok {
			return s, nil
		}
	}
	return 0, domain.NewValidationError("pad shape", "unknown token %q", tok)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	tok, ok := shapeTokens[s]
	if !ok {
		return nil, domain.NewValidationError("pad shape", "unrepresentable value %d", s)
	}
	return []byte(tok), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(b []byte) error {
	parsed, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Pad is one copper pad of a footprint. It is a plain value; two pads are
// equal when all fields are equal, which is the property the serialization
// round-trip preserves.
type Pad struct {
	UUID     uuid.UUID     `json:"uuid"`
	Side     Side          `json:"side"`
	Shape    Shape         `json:"shape"`
	Position domain.Point  `json:"position"`
	Rotation domain.Angle  `json:"rotation"`
	Size     domain.Size   `json:"size"`
	Drill    domain.Length `json:"drill"`
}

// Validate checks that the pad has an identifier and geometrically sane
// dimensions.
func (p Pad) Validate() error {
	if p.UUID == uuid.Nil {
		return domain.NewValidationError("pad", "missing uuid")
	}
	if p.Size.Width <= 0 {
		return domain.NewValidationError("pad", "%s: width must be positive, got %s", p.UUID, p.Size.Width)
	}
	if p.Size.Height <= 0 {
		return domain.NewValidationError("pad", "%s: height must be positive, got %s", p.UUID, p.Size.Height)
	}
	if p.Drill < 0 {
		return domain.NewValidationError("pad", "%s: drill must not be negative, got %s", p.UUID, p.Drill)
	}
	return nil
}

// Sexpr renders the pad as its S-expression node. The caller is expected to
// have validated the pad; an invalid enum value serializes as "invalid" and
// will be rejected on parse.
func (p Pad) Sexpr() *sexpr.List {
	l := sexpr.NewList("pad")
	l.AppendToken(p.UUID.String())
	l.NewChild("side").AppendToken(p.Side.String())
	l.NewChild("shape").AppendToken(p.Shape.String())
	l.NewChild("pos").
		AppendToken(domain.FormatMillimeters(p.Position.X)).
		AppendToken(domain.FormatMillimeters(p.Position.Y))
	l.NewChild("rot").AppendToken(domain.FormatDegrees(p.Rotation))
	l.NewChild("size").
		AppendToken(domain.FormatMillimeters(p.Size.Width)).
		AppendToken(domain.FormatMillimeters(p.Size.Height))
	l.NewChild("drill").AppendToken(domain.FormatMillimeters(p.Drill))
	return l
}

// PadFromSexpr decodes and validates a pad node. Every required field must
// be present and well formed.
func PadFromSexpr(l *sexpr.List) (Pad, error) {
	var p Pad
	if l.Name != "pad" {
		return p, domain.NewValidationError("pad", "expected (pad …), got (%s …)", l.Name)
	}

	idTok, ok := l.Token(0)
	if !ok {
		return p, domain.NewValidationError("pad", "missing uuid token")
	}
	id, err := uuid.Parse(idTok)
	if err != nil {
		return p, domain.NewValidationError("pad", "bad uuid %q: %v", idTok, err)
	}
	p.UUID = id

	sideTok, err := childToken(l, "side")
	if err != nil {
		return p, err
	}
	if p.Side, err = ParseSide(sideTok); err != nil {
		return p, err
	}

	shapeTok, err := childToken(l, "shape")
	if err != nil {
		return p, err
	}
	if p.Shape, err = ParseShape(shapeTok); err != nil {
		return p, err
	}

	if p.Position, err = childPoint(l, "pos"); err != nil {
		return p, err
	}

	rotTok, err := childToken(l, "rot")
	if err != nil {
		return p, err
	}
	if p.Rotation, err = domain.ParseDegrees(rotTok); err != nil {
		return p, err
	}

	sizePos, err := childPoint(l, "size")
	if err != nil {
		return p, err
	}
	p.Size = domain.Size{Width: sizePos.X, Height: sizePos.Y}

	drillTok, err := childToken(l, "drill")
	if err != nil {
		return p, err
	}
	if p.Drill, err = domain.ParseMillimeters(drillTok); err != nil {
		return p, err
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// ParsePad decodes a pad from S-expression source text.
func ParsePad(src string) (Pad, error) {
	l, err := sexpr.Parse(src)
	if err != nil {
		return Pad{}, domain.NewValidationError("pad", "%v", err)
	}
	return PadFromSexpr(l)
}

// Footprint is the board-side geometry of a definition: a named set of pads.
type Footprint struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Pads []Pad     `json:"pads"`
}

// Validate checks the footprint and every pad in it.
func (f *Footprint) Validate() error {
	if f.ID == uuid.Nil {
		return domain.NewValidationError("footprint", "missing id")
	}
	seen := make(map[uuid.UUID]bool, len(f.Pads))
	for _, p := range f.Pads {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.UUID] {
			return domain.NewValidationError("footprint", "%s: duplicate pad %s", f.Name, p.UUID)
		}
		seen[p.UUID] = true
	}
	return nil
}

// Sexpr renders the footprint document.
func (f *Footprint) Sexpr() *sexpr.List {
	l := sexpr.NewList("footprint")
	l.AppendToken(f.ID.String())
	l.NewChild("name").AppendString(f.Name)
	for _, p := range f.Pads {
		l.AppendChild(p.Sexpr())
	}
	return l
}

// FootprintFromSexpr decodes and validates a footprint document.
func FootprintFromSexpr(l *sexpr.List) (*Footprint, error) {
	if l.Name != "footprint" {
		return nil, domain.NewValidationError("footprint", "expected (footprint …), got (%s …)", l.Name)
	}

	idTok, ok := l.Token(0)
	if !ok {
		return nil, domain.NewValidationError("footprint", "missing id token")
	}
	id, err := uuid.Parse(idTok)
	if err != nil {
		return nil, domain.NewValidationError("footprint", "bad id %q: %v", idTok, err)
	}

	f := &Footprint{ID: id}
	if nameNode, ok := l.Child("name"); ok {
		if n, ok := nameNode.Token(0); ok {
			f.Name = n
		}
	}
	for _, padNode := range l.Children("pad") {
		p, err := PadFromSexpr(padNode)
		if err != nil {
			return nil, err
		}
		f.Pads = append(f.Pads, p)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFootprint decodes a footprint from S-expression source text.
func ParseFootprint(src string) (*Footprint, error) {
	l, err := sexpr.Parse(src)
	if err != nil {
		return nil, domain.NewValidationError("footprint", "%v", err)
	}
	return FootprintFromSexpr(l)
}

func childToken(l *sexpr.List, name string) (string, error) {
	child, ok := l.Child(name)
	if !ok {
		return "", domain.NewValidationError(l.Name, "missing (%s …)", name)
	}
	tok, ok := child.Token(0)
	if !ok {
		return "", domain.NewValidationError(l.Name, "(%s …) has no value", name)
	}
	return tok, nil
}

func childPoint(l *sexpr.List, name string) (domain.Point, error) {
	child, ok := l.Child(name)
	if !ok {
		return domain.Point{}, domain.NewValidationError(l.Name, "missing (%s …)", name)
	}
	toks := child.Tokens()
	if len(toks) != 2 {
		return domain.Point{}, domain.NewValidationError(l.Name, "(%s …) needs two values, got %d", name, len(toks))
	}
	x, err := domain.ParseMillimeters(toks[0])
	if err != nil {
		return domain.Point{}, err
	}
	y, err := domain.ParseMillimeters(toks[1])
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}
