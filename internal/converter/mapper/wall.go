package mapper

import (
	"fmt"
	"math"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/geometry"
	"fml2scene/internal/converter/ids"
	"fml2scene/internal/converter/metadata"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/scenescript"
)

// ============================================================
// Wall
// ============================================================

// WallFrame is the converted geometry openings are placed against.
type WallFrame struct {
	ID int
	A  geometry.Vec2
	B  geometry.Vec2
	// C is the control point of a curved wall, nil for straight walls.
	C *geometry.Vec2
}

// ConvertWall emits make_wall or make_curved_wall followed by one command
// per opening on the wall.
func ConvertWall(w models.Wall, id int, ctx *Context) (Output, error) {
	fields := []field{
		{"a.x", w.A.X}, {"a.y", w.A.Y}, {"b.x", w.B.X}, {"b.y", w.B.Y},
		{"az.z", w.AZ.Z}, {"az.h", w.AZ.H}, {"bz.z", w.BZ.Z}, {"bz.h", w.BZ.H},
		{"thickness", w.Thickness}, {"balance", w.Balance},
	}
	if w.IsCurved() {
		fields = append(fields, field{"c.x", w.C.X}, field{"c.y", w.C.Y})
	}
	if err := finite(fields...); err != nil {
		return Output{}, err
	}

	var out Output
	eid := diagnostics.ID(id)

	frame := WallFrame{ID: id, A: geometry.ToMeters2(w.A), B: geometry.ToMeters2(w.B)}
	if w.IsCurved() {
		c := geometry.ToMeters2(*w.C)
		frame.C = &c
	}
	if snap := ctx.Options.SnapValue; snap > 0 {
		snapFrame(&frame, snap, &out)
	}

	topA := geometry.CmToMeters(w.AZ.H)
	topB := geometry.CmToMeters(w.BZ.H)
	height := math.Max(topA, topB)
	thickness := geometry.CmToMeters(w.Thickness)

	attrs := metadata.WallAttributes{
		Thickness: thickness,
		Left:      w.Decor.Left,
		Right:     w.Decor.Right,
	}

	if math.Abs(topA-topB) > heightTolerance {
		attrs.HeightVariation = &metadata.HeightVariation{Start: topA, End: topB}
		out.warn(diagnostics.NewInformationLoss("wall", eid, "height",
			map[string]float64{"start": topA, "end": topB},
			fmt.Sprintf("top elevation varies from %s m to %s m; using %s m",
				scenescript.FormatFloat(topA), scenescript.FormatFloat(topB), scenescript.FormatFloat(height))))
	}

	if w.Balance != centeredBalance {
		balance := w.Balance
		attrs.Balance = &balance
		loss := diagnostics.NewInformationLoss("wall", eid, "balance", w.Balance,
			"wall body offset from its axis kept in metadata only")
		loss.Severity = diagnostics.Low
		out.warn(loss)
	}

	if !w.Decor.Empty() {
		out.warn(decorDiagnostics(eid, "left", w.Decor.Left)...)
		out.warn(decorDiagnostics(eid, "right", w.Decor.Right)...)
	}

	name := scenescript.MakeWall
	if frame.C != nil {
		name = scenescript.MakeCurvedWall
		attrs.Curve = &metadata.Curve{
			Control:   [2]float64{frame.C.X, frame.C.Y},
			ArcLength: geometry.BezierArcLength(frame.A, *frame.C, frame.B),
		}
	}

	cmd := scenescript.New(name).
		Int("id", id).
		Float("a_x", frame.A.X).
		Float("a_y", frame.A.Y).
		Float("a_z", geometry.CmToMeters(w.AZ.Z)).
		Float("b_x", frame.B.X).
		Float("b_y", frame.B.Y).
		Float("b_z", geometry.CmToMeters(w.BZ.Z))
	if frame.C != nil {
		cmd.Float("c_x", frame.C.X).Float("c_y", frame.C.Y)
	}
	cmd.Float("height", height).Float("thickness", thickness)

	out.line(cmd.String())
	out.attach(id, attrs)

	for i, op := range w.Openings {
		element, category := openingCategory(op)
		oid := ctx.IDs.Next(category)
		if d := outOfBand(element, oid, category); d != nil {
			out.warn(*d)
		}
		res, failure := guard(element, i+1, func() (Output, error) {
			return ConvertOpening(op, oid, frame)
		})
		if failure != nil {
			failure.ElementID = diagnostics.ID(oid)
			out.warn(*failure)
			continue
		}
		out.append(res)
	}

	return out, nil
}

func snapFrame(frame *WallFrame, step float64, out *Output) {
	before := *frame
	frame.A = frame.A.Snapped(step)
	frame.B = frame.B.Snapped(step)
	if frame.C != nil {
		c := frame.C.Snapped(step)
		frame.C = &c
	}

	moved := frame.A != before.A || frame.B != before.B ||
		(frame.C != nil && *frame.C != *before.C)
	if !moved {
		return
	}
	out.warn(diagnostics.NewUnitConversion("wall", diagnostics.ID(frame.ID), "position",
		map[string]float64{"a_x": before.A.X, "a_y": before.A.Y, "b_x": before.B.X, "b_y": before.B.Y},
		fmt.Sprintf("coordinates snapped to a %s m grid", scenescript.FormatFloat(step))))
}

func decorDiagnostics(id *int, side string, d models.Decor) []diagnostics.Diagnostic {
	switch v := d.(type) {
	case models.ColorDecor:
		loss := diagnostics.NewInformationLoss("wall", id, "decorations."+side, v.Color,
			"wall color kept in metadata only")
		loss.Severity = diagnostics.Low
		return []diagnostics.Diagnostic{loss}
	case models.MaterialDecor:
		return []diagnostics.Diagnostic{
			diagnostics.NewMaterialPreservation("wall", id, "decorations."+side, v.RefID),
		}
	case models.TextureDecor:
		return []diagnostics.Diagnostic{
			diagnostics.NewMaterialPreservation("wall", id, "decorations."+side, v.Src),
		}
	}
	return nil
}

func openingCategory(op models.Opening) (string, ids.Category) {
	if op.Kind() == models.OpeningDoor {
		return "door", ids.Door
	}
	return "window", ids.Window
}
