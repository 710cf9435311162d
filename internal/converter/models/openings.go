package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Openings (door | window)
// ============================================================

type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

// OpeningBase holds the fields shared by doors and windows.
// T is the relative position along the owning wall, in [0,1].
type OpeningBase struct {
	RefID   string  `json:"refid"`
	Width   float64 `json:"width" validate:"gt=0"`
	Z       float64 `json:"z"`
	ZHeight float64 `json:"z_height" validate:"gt=0"`
	T       float64 `json:"t" validate:"gte=0,lte=1"`
}

// Opening is the closed set {Door, Window}.
type Opening interface {
	Kind() OpeningKind
	Base() OpeningBase
}

type Door struct {
	OpeningBase
	// Mirrored[0] selects the hinge side, Mirrored[1] the swing direction.
	Mirrored   [2]int `json:"mirrored"`
	FrameColor string `json:"frameColor,omitempty"`
	DoorColor  string `json:"doorColor,omitempty"`
}

func (Door) Kind() OpeningKind { return OpeningDoor }

func (d Door) Base() OpeningBase { return d.OpeningBase }

type Window struct {
	OpeningBase
	FrameColor string `json:"frameColor,omitempty"`
}

func (Window) Kind() OpeningKind { return OpeningWindow }

func (w Window) Base() OpeningBase { return w.OpeningBase }

// Openings decodes the "type" tag of every element into Door or Window.
type Openings []Opening

func (o *Openings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Openings, 0, len(raw))
	for i, msg := range raw {
		var head struct {
			Type OpeningKind `json:"type"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return fmt.Errorf("opening %d: %w", i+1, err)
		}

		switch head.Type {
		case OpeningDoor:
			var d Door
			if err := json.Unmarshal(msg, &d); err != nil {
				return fmt.Errorf("opening %d: %w", i+1, err)
			}
			out = append(out, d)
		case OpeningWindow:
			var w Window
			if err := json.Unmarshal(msg, &w); err != nil {
				return fmt.Errorf("opening %d: %w", i+1, err)
			}
			out = append(out, w)
		default:
			return fmt.Errorf("opening %d: unknown type %q", i+1, head.Type)
		}
	}

	*o = out
	return nil
}

func (o Openings) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(o))
	for _, op := range o {
		b := op.Base()
		m := map[string]any{
			"type":     op.Kind(),
			"refid":    b.RefID,
			"width":    b.Width,
			"z":        b.Z,
			"z_height": b.ZHeight,
			"t":        b.T,
		}
		switch v := op.(type) {
		case Door:
			m["mirrored"] = v.Mirrored
			if v.FrameColor != "" {
				m["frameColor"] = v.FrameColor
			}
			if v.DoorColor != "" {
				m["doorColor"] = v.DoorColor
			}
		case Window:
			if v.FrameColor != "" {
				m["frameColor"] = v.FrameColor
			}
		}
		out = append(out, m)
	}
	return json.Marshal(out)
}
