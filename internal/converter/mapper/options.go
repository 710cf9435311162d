package mapper

// ============================================================
// Options
// ============================================================

// heightTolerance is the largest top-elevation difference (meters) a wall
// may have before the single height loses information.
const heightTolerance = 0.01

// centeredBalance puts the wall body symmetric about its a-b axis, which is
// what a scene wall of the given thickness assumes.
const centeredBalance = 0.5

// Options is threaded into every conversion; nothing is read from globals.
type Options struct {
	// SnapValue snaps wall coordinates to a grid, in meters. 0 disables it.
	SnapValue float64 `json:"snap_value" validate:"gte=0"`
	// EmitLabelComments adds a "# label" line per label to the output.
	EmitLabelComments bool          `json:"emit_label_comments"`
	LabelDefaults     LabelDefaults `json:"label_defaults"`
}

// LabelDefaults decides which label attributes are worth recording.
type LabelDefaults struct {
	FontFamily      string  `json:"font_family"`
	FontSize        float64 `json:"font_size"`
	FontColor       string  `json:"font_color"`
	BackgroundColor string  `json:"background_color"`
	Align           string  `json:"align"`
	LetterSpacing   float64 `json:"letter_spacing"`
}

func DefaultOptions() Options {
	return Options{
		LabelDefaults: DefaultLabelDefaults(),
	}
}

func DefaultLabelDefaults() LabelDefaults {
	return LabelDefaults{
		FontFamily:      "Arial",
		FontSize:        12,
		FontColor:       "#000000",
		BackgroundColor: "",
		Align:           "center",
		LetterSpacing:   0,
	}
}
