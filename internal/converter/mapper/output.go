package mapper

import (
	"fmt"
	"math"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/ids"
	"fml2scene/internal/converter/metadata"
)

// ============================================================
// Converter output
// ============================================================

// Contribution is one attribute bag destined for the metadata sink.
type Contribution struct {
	ID         int
	Attributes metadata.Attributes
}

// Output is what a single entity converter produces. Converters never
// touch the sink or the collector; the orchestrator applies Output.
type Output struct {
	Lines       []string
	Metadata    []Contribution
	Diagnostics []diagnostics.Diagnostic
}

func (o *Output) line(s string) {
	o.Lines = append(o.Lines, s)
}

func (o *Output) attach(id int, a metadata.Attributes) {
	o.Metadata = append(o.Metadata, Contribution{ID: id, Attributes: a})
}

func (o *Output) warn(d ...diagnostics.Diagnostic) {
	o.Diagnostics = append(o.Diagnostics, d...)
}

func (o *Output) append(other Output) {
	o.Lines = append(o.Lines, other.Lines...)
	o.Metadata = append(o.Metadata, other.Metadata...)
	o.Diagnostics = append(o.Diagnostics, other.Diagnostics...)
}

// Context carries the per-run state a converter may need. Only the wall
// converter allocates ids through it (for its openings).
type Context struct {
	Options Options
	IDs     *ids.Allocator
}

// guard runs one conversion and turns an error or panic into a
// validation-error diagnostic carrying the 1-based index.
func guard(element string, index int, fn func() (Output, error)) (out Output, failure *diagnostics.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			d := diagnostics.NewValidationError(element, index, "", fmt.Errorf("panic: %v", r))
			out, failure = Output{}, &d
		}
	}()

	out, err := fn()
	if err != nil {
		d := diagnostics.NewValidationError(element, index, "", err)
		return Output{}, &d
	}
	return out, nil
}

// outOfBand reports a generated id that left the band of its category.
func outOfBand(element string, id int, c ids.Category) *diagnostics.Diagnostic {
	if ids.InRange(id, c) {
		return nil
	}
	end, _ := ids.BandEnd(c)
	d := diagnostics.NewIDOverflow(element, id, string(c), end)
	return &d
}

type field struct {
	name  string
	value float64
}

// finite returns an error naming the first NaN or infinite value.
func finite(fields ...field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("non-finite %s: %v", f.name, f.value)
		}
	}
	return nil
}
