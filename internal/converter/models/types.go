package models

import (
	"encoding/json"
)

// ============================================================
// Geometry primitives (centimeters)
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Elevation is the base (Z) and top (H) elevation of a wall endpoint.
type Elevation struct {
	Z float64 `json:"z"`
	H float64 `json:"h"`
}

// ============================================================
// Project tree
// ============================================================

type Project struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Floors []Floor `json:"floors" validate:"required,min=1,dive"`
}

type Floor struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Level   int      `json:"level"`
	Designs []Design `json:"designs" validate:"dive"`
}

// Design is one plan variant of a floor. Areas, surfaces, lines and
// dimensions are kept raw: the converter only counts them.
type Design struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Walls  []Wall  `json:"walls" validate:"dive"`
	Items  []Item  `json:"items" validate:"dive"`
	Labels []Label `json:"labels" validate:"dive"`

	Areas      []json.RawMessage `json:"areas,omitempty"`
	Surfaces   []json.RawMessage `json:"surfaces,omitempty"`
	Lines      []json.RawMessage `json:"lines,omitempty"`
	Dimensions []json.RawMessage `json:"dimensions,omitempty"`
}

type Wall struct {
	ID        *int      `json:"id,omitempty"`
	A         Point     `json:"a"`
	B         Point     `json:"b"`
	C         *Point    `json:"c,omitempty"` // control point, set for curved walls
	AZ        Elevation `json:"az"`
	BZ        Elevation `json:"bz"`
	Thickness float64   `json:"thickness" validate:"gt=0"`
	Balance   float64   `json:"balance" validate:"gte=0,lte=1"`
	Openings  Openings  `json:"openings" validate:"dive"`
	Decor     WallDecor `json:"decor"`
}

// IsCurved reports whether the wall carries a control point.
func (w Wall) IsCurved() bool {
	return w.C != nil
}

type Item struct {
	ID        *int               `json:"id,omitempty"`
	RefID     string             `json:"refid"`
	Name      string             `json:"name,omitempty"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Z         float64            `json:"z"`
	Width     float64            `json:"width" validate:"gt=0"`
	Height    float64            `json:"height" validate:"gt=0"`
	ZHeight   float64            `json:"z_height" validate:"gt=0"`
	Rotation  float64            `json:"rotation"`
	Mirrored  []int              `json:"mirrored,omitempty"`
	Light     *Light             `json:"light,omitempty"`
	Materials map[string]float64 `json:"materials,omitempty"`
}

type Light struct {
	On        bool    `json:"on"`
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity" validate:"gte=0,lte=200"`
}

type Label struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Text            string  `json:"text"`
	FontFamily      string  `json:"font_family,omitempty"`
	FontSize        float64 `json:"font_size,omitempty"`
	LetterSpacing   float64 `json:"letter_spacing,omitempty"`
	FontColor       string  `json:"font_color,omitempty"`
	BackgroundColor string  `json:"background_color,omitempty"`
	Align           string  `json:"align,omitempty"`
	Rotation        float64 `json:"rotation,omitempty"`
	Bold            bool    `json:"bold,omitempty"`
	Italic          bool    `json:"italic,omitempty"`
	Outline         bool    `json:"outline,omitempty"`
}
