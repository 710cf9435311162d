package mapper

import (
	"fmt"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/geometry"
	"fml2scene/internal/converter/metadata"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/scenescript"
)

// ============================================================
// Openings
// ============================================================

// ConvertOpening places a door or window at t along its wall frame. Only
// geometry reaches the command; everything else goes to metadata.
func ConvertOpening(op models.Opening, id int, frame WallFrame) (Output, error) {
	base := op.Base()
	if err := finite(
		field{"width", base.Width}, field{"z", base.Z},
		field{"z_height", base.ZHeight}, field{"t", base.T},
	); err != nil {
		return Output{}, err
	}

	var (
		out     Output
		name    string
		element string
		attrs   metadata.Attributes
	)

	pos := geometry.Interpolate(frame.A, frame.B, base.T)

	var onCurve *[2]float64
	if frame.C != nil {
		p := geometry.QuadraticBezierPoint(frame.A, *frame.C, frame.B, base.T)
		onCurve = &[2]float64{p.X, p.Y}
	}

	switch v := op.(type) {
	case models.Door:
		name, element = scenescript.MakeDoor, "door"
		attrs = metadata.DoorAttributes{
			Asset:         v.RefID,
			Swing:         swingOf(v.Mirrored),
			FrameColor:    v.FrameColor,
			DoorColor:     v.DoorColor,
			CurvePosition: onCurve,
		}
	case models.Window:
		name, element = scenescript.MakeWindow, "window"
		attrs = metadata.WindowAttributes{
			Asset:         v.RefID,
			FrameColor:    v.FrameColor,
			CurvePosition: onCurve,
		}
	default:
		return Output{}, fmt.Errorf("unsupported opening %T", op)
	}

	if onCurve != nil {
		loss := diagnostics.NewInformationLoss(element, diagnostics.ID(id), "position",
			[]float64{onCurve[0], onCurve[1]},
			"opening on a curved wall is placed on the chord; curve position kept in metadata")
		loss.Severity = diagnostics.Low
		out.warn(loss)
	}

	out.line(scenescript.New(name).
		Int("id", id).
		Int("wall0_id", frame.ID).
		Int("wall1_id", scenescript.NoWall).
		Float("position_x", pos.X).
		Float("position_y", pos.Y).
		Float("position_z", geometry.CmToMeters(base.Z)).
		Float("width", geometry.CmToMeters(base.Width)).
		Float("height", geometry.CmToMeters(base.ZHeight)).
		String())
	out.attach(id, attrs)

	return out, nil
}

// swingOf maps the mirror flags: hinge left unless the first flag is set,
// swinging inward unless the second is set.
func swingOf(mirrored [2]int) metadata.Swing {
	s := metadata.Swing{Hinge: "left", Direction: "inward"}
	if mirrored[0] != 0 {
		s.Hinge = "right"
	}
	if mirrored[1] != 0 {
		s.Direction = "outward"
	}
	return s
}
