package mapper

import (
	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/geometry"
	"fml2scene/internal/converter/metadata"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/scenescript"
)

// ============================================================
// Items
// ============================================================

// ConvertItem emits one make_bbox per furniture item.
func ConvertItem(it models.Item, id int, ctx *Context) (Output, error) {
	if err := finite(
		field{"x", it.X}, field{"y", it.Y}, field{"z", it.Z},
		field{"width", it.Width}, field{"height", it.Height}, field{"z_height", it.ZHeight},
		field{"rotation", it.Rotation},
	); err != nil {
		return Output{}, err
	}

	var out Output
	eid := diagnostics.ID(id)

	attrs := metadata.ItemAttributes{
		Asset:     it.RefID,
		Name:      it.Name,
		Mirrored:  it.Mirrored,
		Light:     it.Light,
		Materials: it.Materials,
	}

	for _, dim := range []field{{"width", it.Width}, {"height", it.Height}, {"z_height", it.ZHeight}} {
		if dim.value <= 0 {
			out.warn(diagnostics.NewMissingData("item", eid, dim.name))
		}
	}
	if len(out.Diagnostics) > 0 {
		// No box without a size; the attributes still survive.
		out.attach(id, attrs)
		return out, nil
	}

	if mirroredAny(it.Mirrored) {
		out.warn(diagnostics.NewInformationLoss("item", eid, "mirrored", it.Mirrored,
			"bounding box cannot express mirroring; kept in metadata"))
	}
	if it.Light != nil {
		out.warn(diagnostics.NewInformationLoss("item", eid, "light", *it.Light,
			"bounding box cannot express lighting; kept in metadata"))
	}
	if len(it.Materials) > 0 {
		out.warn(diagnostics.NewMaterialPreservation("item", eid, "materials", len(it.Materials)))
	}

	pos := geometry.ToMeters3(models.Point3{X: it.X, Y: it.Y, Z: it.Z})
	half := geometry.HalfExtents(
		geometry.CmToMeters(it.Width),
		geometry.CmToMeters(it.Height),
		geometry.CmToMeters(it.ZHeight),
	)

	out.line(scenescript.New(scenescript.MakeBBox).
		Int("id", id).
		Float("position_x", pos.X).
		Float("position_y", pos.Y).
		Float("position_z", pos.Z).
		Float("angle_z", geometry.DegreesToRadians(it.Rotation)).
		Float("scale_x", half.X).
		Float("scale_y", half.Y).
		Float("scale_z", half.Z).
		String())
	out.attach(id, attrs)

	return out, nil
}

func mirroredAny(flags []int) bool {
	for _, f := range flags {
		if f != 0 {
			return true
		}
	}
	return false
}
