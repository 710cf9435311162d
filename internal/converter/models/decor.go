package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Wall decor (color | material | texture)
// ============================================================

type DecorKind string

const (
	DecorColor    DecorKind = "color"
	DecorMaterial DecorKind = "material"
	DecorTexture  DecorKind = "texture"
)

// Decor is the finishing of one wall side. A nil Decor means the side is bare.
type Decor interface {
	Kind() DecorKind
}

type ColorDecor struct {
	Color string `json:"color"`
}

type MaterialDecor struct {
	RefID string `json:"refid"`
}

type TextureDecor struct {
	Src      string  `json:"src"`
	Scale    float64 `json:"scale,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

func (ColorDecor) Kind() DecorKind { return DecorColor }

func (MaterialDecor) Kind() DecorKind { return DecorMaterial }

func (TextureDecor) Kind() DecorKind { return DecorTexture }

// WallDecor holds both sides of a wall.
type WallDecor struct {
	Left  Decor
	Right Decor
}

// Empty reports whether neither side carries a finish.
func (d WallDecor) Empty() bool {
	return d.Left == nil && d.Right == nil
}

type decorWire struct {
	Color   string        `json:"color,omitempty"`
	RefID   string        `json:"refid,omitempty"`
	Texture *TextureDecor `json:"texture,omitempty"`
}

func (d *WallDecor) UnmarshalJSON(data []byte) error {
	var raw struct {
		Left  *decorWire `json:"left"`
		Right *decorWire `json:"right"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	left, err := raw.Left.decode()
	if err != nil {
		return fmt.Errorf("decor left: %w", err)
	}
	right, err := raw.Right.decode()
	if err != nil {
		return fmt.Errorf("decor right: %w", err)
	}

	d.Left, d.Right = left, right
	return nil
}

func (d WallDecor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left  *decorWire `json:"left,omitempty"`
		Right *decorWire `json:"right,omitempty"`
	}{encodeDecor(d.Left), encodeDecor(d.Right)})
}

func (w *decorWire) decode() (Decor, error) {
	if w == nil {
		return nil, nil
	}

	set := 0
	var out Decor
	if w.Color != "" {
		set++
		out = ColorDecor{Color: w.Color}
	}
	if w.RefID != "" {
		set++
		out = MaterialDecor{RefID: w.RefID}
	}
	if w.Texture != nil {
		set++
		out = *w.Texture
	}
	if set > 1 {
		return nil, fmt.Errorf("expected one of color, refid, texture; got %d", set)
	}
	return out, nil
}

func encodeDecor(d Decor) *decorWire {
	switch v := d.(type) {
	case ColorDecor:
		return &decorWire{Color: v.Color}
	case MaterialDecor:
		return &decorWire{RefID: v.RefID}
	case TextureDecor:
		return &decorWire{Texture: &v}
	}
	return nil
}
