package metadata

import (
	"fml2scene/internal/converter/models"
)

// ============================================================
// Entity kinds
// ============================================================

type Kind string

const (
	KindWall   Kind = "wall"
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
	KindItem   Kind = "item"
	KindLabel  Kind = "label"
)

// Attributes is the closed set of attribute bags the converters produce.
// Bag returns the serialized form; an empty bag is never stored.
type Attributes interface {
	Kind() Kind
	Bag() map[string]any
}

// ============================================================
// Wall
// ============================================================

type HeightVariation struct {
	Start float64
	End   float64
}

type Curve struct {
	Control   [2]float64
	ArcLength float64
}

// WallAttributes.Balance is set only when the wall body is off its a-b axis.
type WallAttributes struct {
	Thickness       float64
	Balance         *float64
	Left            models.Decor
	Right           models.Decor
	HeightVariation *HeightVariation
	Curve           *Curve
}

func (WallAttributes) Kind() Kind { return KindWall }

// Bag carries thickness only alongside something the command lost.
func (a WallAttributes) Bag() map[string]any {
	bag := map[string]any{}

	decorations := map[string]any{}
	if d := decorBag(a.Left); d != nil {
		decorations["left"] = d
	}
	if d := decorBag(a.Right); d != nil {
		decorations["right"] = d
	}
	if len(decorations) > 0 {
		bag["decorations"] = decorations
	}
	if a.HeightVariation != nil {
		bag["height_variation"] = map[string]any{
			"start": a.HeightVariation.Start,
			"end":   a.HeightVariation.End,
		}
	}
	if a.Balance != nil {
		bag["balance"] = *a.Balance
	}
	if a.Curve != nil {
		bag["curve"] = map[string]any{
			"control":    []float64{a.Curve.Control[0], a.Curve.Control[1]},
			"arc_length": a.Curve.ArcLength,
		}
	}

	if len(bag) > 0 {
		bag["thickness"] = a.Thickness
	}
	return bag
}

func decorBag(d models.Decor) map[string]any {
	switch v := d.(type) {
	case models.ColorDecor:
		return map[string]any{"type": string(v.Kind()), "color": v.Color}
	case models.MaterialDecor:
		return map[string]any{"type": string(v.Kind()), "refid": v.RefID}
	case models.TextureDecor:
		out := map[string]any{"type": string(v.Kind()), "src": v.Src}
		if v.Scale != 0 {
			out["scale"] = v.Scale
		}
		if v.Rotation != 0 {
			out["rotation"] = v.Rotation
		}
		return out
	}
	return nil
}

// ============================================================
// Openings
// ============================================================

type Swing struct {
	Hinge     string
	Direction string
}

type DoorAttributes struct {
	Asset         string
	Swing         Swing
	FrameColor    string
	DoorColor     string
	CurvePosition *[2]float64
}

func (DoorAttributes) Kind() Kind { return KindDoor }

func (a DoorAttributes) Bag() map[string]any {
	bag := map[string]any{
		"swing": map[string]any{
			"hinge":     a.Swing.Hinge,
			"direction": a.Swing.Direction,
		},
	}
	setString(bag, "asset", a.Asset)
	setString(bag, "frame_color", a.FrameColor)
	setString(bag, "door_color", a.DoorColor)
	setPosition(bag, "curve_position", a.CurvePosition)
	return bag
}

type WindowAttributes struct {
	Asset         string
	FrameColor    string
	CurvePosition *[2]float64
}

func (WindowAttributes) Kind() Kind { return KindWindow }

func (a WindowAttributes) Bag() map[string]any {
	bag := map[string]any{}
	setString(bag, "asset", a.Asset)
	setString(bag, "frame_color", a.FrameColor)
	setPosition(bag, "curve_position", a.CurvePosition)
	return bag
}

// ============================================================
// Item
// ============================================================

type ItemAttributes struct {
	Asset     string
	Name      string
	Mirrored  []int
	Light     *models.Light
	Materials map[string]float64
}

func (ItemAttributes) Kind() Kind { return KindItem }

func (a ItemAttributes) Bag() map[string]any {
	bag := map[string]any{}
	setString(bag, "asset", a.Asset)
	setString(bag, "name", a.Name)
	if len(a.Mirrored) > 0 {
		bag["mirrored"] = append([]int(nil), a.Mirrored...)
	}
	if a.Light != nil {
		bag["light"] = map[string]any{
			"on":        a.Light.On,
			"color":     a.Light.Color,
			"intensity": a.Light.Intensity,
		}
	}
	if len(a.Materials) > 0 {
		materials := make(map[string]any, len(a.Materials))
		for name, weight := range a.Materials {
			materials[name] = weight
		}
		bag["materials"] = materials
	}
	return bag
}

// ============================================================
// Label
// ============================================================

// LabelAttributes keeps the text and position of a label plus every style
// attribute that differs from the configured defaults.
type LabelAttributes struct {
	Text     string
	Position [2]float64
	Style    map[string]any
}

func (LabelAttributes) Kind() Kind { return KindLabel }

func (a LabelAttributes) Bag() map[string]any {
	bag := map[string]any{
		"text":     a.Text,
		"position": []float64{a.Position[0], a.Position[1]},
	}
	if len(a.Style) > 0 {
		style := make(map[string]any, len(a.Style))
		for k, v := range a.Style {
			style[k] = v
		}
		bag["style"] = style
	}
	return bag
}

func setString(bag map[string]any, key, value string) {
	if value != "" {
		bag[key] = value
	}
}

func setPosition(bag map[string]any, key string, p *[2]float64) {
	if p != nil {
		bag[key] = []float64{p[0], p[1]}
	}
}
