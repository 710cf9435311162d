package mapper

import (
	"errors"
	"strings"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/ids"
	"fml2scene/internal/converter/metadata"
	"fml2scene/internal/converter/models"
)

var (
	ErrNoProject = errors.New("no project")
	ErrNoFloors  = errors.New("project has no floors")
)

// ============================================================
// Result
// ============================================================

type DesignOutput struct {
	FloorID int64    `json:"floor_id"`
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Lines   []string `json:"lines"`
}

// Result is the (command text, metadata, diagnostics) triple of one run.
type Result struct {
	CommandText string                    `json:"command_text"`
	Designs     []DesignOutput            `json:"designs"`
	Metadata    map[string]metadata.Entry `json:"metadata"`
	Diagnostics []diagnostics.Diagnostic  `json:"diagnostics"`
	Summary     diagnostics.Summary       `json:"summary"`
	Report      string                    `json:"report"`
	NextIDs     map[ids.Category]int      `json:"next_ids"`
}

// ============================================================
// Converter
// ============================================================

// Converter walks project -> floor -> design -> entity. Every Convert call
// starts from a fresh allocator, sink and collector.
type Converter struct {
	opts  Options
	ids   *ids.Allocator
	sink  *metadata.Sink
	diags *diagnostics.Collector
}

func New(opts Options) *Converter {
	return &Converter{opts: opts}
}

// Convert FML project → SceneScript
func (c *Converter) Convert(p *models.Project) (*Result, error) {
	if p == nil {
		return nil, ErrNoProject
	}
	if len(p.Floors) == 0 {
		return nil, ErrNoFloors
	}

	c.reset()

	var designs []DesignOutput
	var all []string
	for _, floor := range p.Floors {
		for _, design := range floor.Designs {
			lines := c.convertDesign(design)
			designs = append(designs, DesignOutput{
				FloorID: floor.ID,
				ID:      design.ID,
				Name:    design.Name,
				Lines:   lines,
			})
			all = append(all, lines...)
		}
	}

	exp := c.diags.Export()
	return &Result{
		CommandText: strings.Join(all, "\n"),
		Designs:     designs,
		Metadata:    c.sink.Snapshot(),
		Diagnostics: exp.Diagnostics,
		Summary:     exp.Summary,
		Report:      c.diags.Text(),
		NextIDs:     c.ids.Snapshot(),
	}, nil
}

func (c *Converter) reset() {
	c.ids = ids.New()
	c.sink = metadata.NewSink()
	c.diags = diagnostics.NewCollector()
}

func (c *Converter) convertDesign(d models.Design) []string {
	lines := []string{}
	ctx := &Context{Options: c.opts, IDs: c.ids}

	for i, wall := range d.Walls {
		alloc := c.ids.PreserveOrGenerate(wall.ID, ids.Wall)
		if alloc.Rejected {
			c.diags.Add(diagnostics.NewIDConflict("wall", alloc.SourceID, alloc.ID))
		}
		c.checkBand("wall", alloc.ID, ids.Wall)
		lines = c.apply(lines, "wall", i+1, alloc.ID, func() (Output, error) {
			return ConvertWall(wall, alloc.ID, ctx)
		})
	}

	for i, item := range d.Items {
		alloc := c.ids.PreserveOrGenerate(item.ID, ids.Item)
		if alloc.Rejected {
			c.diags.Add(diagnostics.NewIDConflict("item", alloc.SourceID, alloc.ID))
		}
		c.checkBand("item", alloc.ID, ids.Item)
		lines = c.apply(lines, "item", i+1, alloc.ID, func() (Output, error) {
			return ConvertItem(item, alloc.ID, ctx)
		})
	}

	for i, label := range d.Labels {
		id := c.ids.Next(ids.Label)
		c.checkBand("label", id, ids.Label)
		lines = c.apply(lines, "label", i+1, id, func() (Output, error) {
			return ConvertLabel(label, id, ctx)
		})
	}

	c.unsupported("areas", len(d.Areas))
	c.unsupported("surfaces", len(d.Surfaces))
	c.unsupported("lines", len(d.Lines))
	c.unsupported("dimensions", len(d.Dimensions))

	return lines
}

// apply runs one guarded conversion and folds its output into the run.
func (c *Converter) apply(lines []string, element string, index, id int, fn func() (Output, error)) []string {
	out, failure := guard(element, index, fn)
	if failure != nil {
		failure.ElementID = diagnostics.ID(id)
		c.diags.Add(*failure)
		return lines
	}

	for _, line := range out.Lines {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	for _, m := range out.Metadata {
		c.sink.Record(m.ID, m.Attributes)
	}
	c.diags.Add(out.Diagnostics...)
	return lines
}

func (c *Converter) checkBand(element string, id int, cat ids.Category) {
	if d := outOfBand(element, id, cat); d != nil {
		c.diags.Add(*d)
	}
}

func (c *Converter) unsupported(collection string, n int) {
	if n > 0 {
		c.diags.Add(diagnostics.NewUnsupportedFeature("design", collection, n))
	}
}
