package httpapi

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/tool"
)

// Geometry travels as exact decimal strings, the same convention catalog
// files use: "10.0" means ten millimeters, never a float.
type pointJSON struct {
	X string `json:"x"`
	Y string `json:"y"`
}

func pointFromDomain(p domain.Point) pointJSON {
	return pointJSON{
		X: domain.FormatMillimeters(p.X),
		Y: domain.FormatMillimeters(p.Y),
	}
}

type eventRequest struct {
	Type       string `json:"type"`
	Definition string `json:"definition,omitempty"`
	Variant    string `json:"variant,omitempty"`
	X          string `json:"x,omitempty"`
	Y          string `json:"y,omitempty"`
}

// decodeEvent maps a wire event onto its tool.Event. Placement starts accept
// an absent definition, which routes through the chooser like an empty
// toolbar activation.
func decodeEvent(req eventRequest) (tool.Event, error) {
	switch req.Type {
	case "start_placement":
		var definition, variant uuid.UUID
		var err error
		if req.Definition != "" {
			if definition, err = uuid.Parse(req.Definition); err != nil {
				return nil, domain.NewValidationError("event", "bad definition id %q: %v", req.Definition, err)
			}
		}
		if req.Variant != "" {
			if variant, err = uuid.Parse(req.Variant); err != nil {
				return nil, domain.NewValidationError("event", "bad variant id %q: %v", req.Variant, err)
			}
		}
		return tool.StartPlacement{Definition: definition, Variant: variant}, nil
	case "pointer_move":
		pos, err := decodePoint(req)
		if err != nil {
			return nil, err
		}
		return tool.PointerMove{Pos: pos}, nil
	case "primary_click":
		pos, err := decodePoint(req)
		if err != nil {
			return nil, err
		}
		return tool.PrimaryClick{Pos: pos}, nil
	case "secondary_click":
		return tool.SecondaryClick{}, nil
	case "rotate_cw":
		return tool.RotateCW{}, nil
	case "rotate_ccw":
		return tool.RotateCCW{}, nil
	case "abort":
		return tool.Abort{}, nil
	case "deactivate":
		return tool.Deactivate{}, nil
	default:
		return nil, domain.NewValidationError("event", "unknown type %q", req.Type)
	}
}

func decodePoint(req eventRequest) (domain.Point, error) {
	x, err := domain.ParseMillimeters(req.X)
	if err != nil {
		return domain.Point{}, err
	}
	y, err := domain.ParseMillimeters(req.Y)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}

type sessionStateResponse struct {
	State          string    `json:"state"`
	Designator     string    `json:"designator,omitempty"`
	Pointer        pointJSON `json:"pointer"`
	ComponentCount int       `json:"component_count"`
	PartCount      int       `json:"part_count"`
	CanUndo        bool      `json:"can_undo"`
	CanRedo        bool      `json:"can_redo"`
}

func sessionState(ed *breadboard.Editor) sessionStateResponse {
	return sessionStateResponse{
		State:          ed.Tool().State().String(),
		Designator:     ed.Tool().Designator(),
		Pointer:        pointFromDomain(ed.Tool().Pointer()),
		ComponentCount: ed.Document().ComponentCount(),
		PartCount:      ed.Document().PartCount(),
		CanUndo:        ed.History().CanUndo(),
		CanRedo:        ed.History().CanRedo(),
	}
}

type componentJSON struct {
	ID         uuid.UUID `json:"id"`
	Definition uuid.UUID `json:"definition"`
	Variant    uuid.UUID `json:"variant"`
	Designator string    `json:"designator"`
}

type partJSON struct {
	ID        uuid.UUID `json:"id"`
	Component uuid.UUID `json:"component"`
	Item      uuid.UUID `json:"item"`
	Position  pointJSON `json:"position"`
	Rotation  string    `json:"rotation"`
}

type documentResponse struct {
	Name       string          `json:"name"`
	Components []componentJSON `json:"components"`
	Parts      []partJSON      `json:"parts"`
}

func documentFromDomain(doc *domain.Document) documentResponse {
	resp := documentResponse{
		Name:       doc.Name,
		Components: []componentJSON{},
		Parts:      []partJSON{},
	}
	for _, c := range doc.Components() {
		resp.Components = append(resp.Components, componentJSON{
			ID:         c.ID,
			Definition: c.Definition,
			Variant:    c.Variant,
			Designator: c.Designator,
		})
	}
	for _, p := range doc.Parts() {
		resp.Parts = append(resp.Parts, partJSON{
			ID:        p.ID,
			Component: p.Component,
			Item:      p.Item,
			Position:  pointFromDomain(p.Position),
			Rotation:  domain.FormatDegrees(p.Rotation),
		})
	}
	return resp
}

type historyResponse struct {
	Descriptions []string `json:"descriptions"`
	Cursor       int      `json:"cursor"`
	CanUndo      bool     `json:"can_undo"`
	CanRedo      bool     `json:"can_redo"`
	UndoNext     string   `json:"undo_next,omitempty"`
	RedoNext     string   `json:"redo_next,omitempty"`
	Clean        bool     `json:"clean"`
}

type definitionSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Prefix      string    `json:"prefix"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	Variants    int       `json:"variants"`
	Footprint   bool      `json:"footprint"`
}

func summarize(def *catalog.Definition) definitionSummary {
	return definitionSummary{
		ID:          def.ID,
		Name:        def.Name,
		Prefix:      def.Prefix,
		Version:     def.Version,
		Description: def.Description,
		Variants:    len(def.Variants),
		Footprint:   def.Footprint != nil,
	}
}
