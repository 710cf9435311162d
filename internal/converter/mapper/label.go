package mapper

import (
	"fmt"
	"strconv"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/geometry"
	"fml2scene/internal/converter/metadata"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/scenescript"
)

// ============================================================
// Labels
// ============================================================

// ConvertLabel produces no structural command. The label lives in metadata;
// with EmitLabelComments a "#" line is added for readers of the script.
func ConvertLabel(l models.Label, id int, ctx *Context) (Output, error) {
	if err := finite(
		field{"x", l.X}, field{"y", l.Y},
		field{"font_size", l.FontSize}, field{"letter_spacing", l.LetterSpacing},
		field{"rotation", l.Rotation},
	); err != nil {
		return Output{}, err
	}

	var out Output
	pos := geometry.ToMeters2(models.Point{X: l.X, Y: l.Y})

	out.attach(id, metadata.LabelAttributes{
		Text:     l.Text,
		Position: [2]float64{pos.X, pos.Y},
		Style:    labelStyle(l, ctx.Options.LabelDefaults),
	})

	loss := diagnostics.NewInformationLoss("label", diagnostics.ID(id), "text", l.Text,
		"labels have no scene command; kept in metadata")
	loss.Severity = diagnostics.Low
	out.warn(loss)

	if ctx.Options.EmitLabelComments {
		out.line(fmt.Sprintf("# label %d: %s at (%s, %s)", id, strconv.Quote(l.Text),
			scenescript.FormatFloat(pos.X), scenescript.FormatFloat(pos.Y)))
	}

	return out, nil
}

// labelStyle keeps only the attributes that differ from the defaults.
// An empty source value means "use the default".
func labelStyle(l models.Label, def LabelDefaults) map[string]any {
	style := map[string]any{}

	if l.FontFamily != "" && l.FontFamily != def.FontFamily {
		style["font_family"] = l.FontFamily
	}
	if l.FontSize != 0 && l.FontSize != def.FontSize {
		style["font_size"] = l.FontSize
	}
	if l.LetterSpacing != def.LetterSpacing {
		style["letter_spacing"] = l.LetterSpacing
	}
	if l.FontColor != "" && l.FontColor != def.FontColor {
		style["font_color"] = l.FontColor
	}
	if l.BackgroundColor != "" && l.BackgroundColor != def.BackgroundColor {
		style["background_color"] = l.BackgroundColor
	}
	if l.Align != "" && l.Align != def.Align {
		style["align"] = l.Align
	}
	if l.Rotation != 0 {
		style["rotation"] = l.Rotation
	}
	if l.Bold {
		style["bold"] = true
	}
	if l.Italic {
		style["italic"] = true
	}
	if l.Outline {
		style["outline"] = true
	}
	return style
}
