package diagnostics

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// Types
// ============================================================

// Type classifies what happened to the source data.
type Type string

const (
	InformationLoss    Type = "information_loss"
	UnsupportedFeature Type = "unsupported_feature"
	ValidationError    Type = "validation_error"
)

type Severity string

const (
	Low    Severity = "low"
	Medium Severity = "medium"
	High   Severity = "high"
)

// Diagnostic is one immutable record. ElementID is nil when the element
// never received an id.
type Diagnostic struct {
	Type          Type     `json:"type" yaml:"type"`
	Severity      Severity `json:"severity" yaml:"severity"`
	ElementType   string   `json:"element_type" yaml:"element_type"`
	ElementID     *int     `json:"element_id,omitempty" yaml:"element_id,omitempty"`
	Property      string   `json:"property,omitempty" yaml:"property,omitempty"`
	OriginalValue any      `json:"original_value,omitempty" yaml:"original_value,omitempty"`
	Message       string   `json:"message" yaml:"message"`
}

// ID wraps an allocated id for Diagnostic.ElementID.
func ID(v int) *int {
	return &v
}

// ============================================================
// Constructors
// ============================================================

func NewInformationLoss(element string, id *int, property string, original any, message string) Diagnostic {
	return Diagnostic{
		Type:          InformationLoss,
		Severity:      Medium,
		ElementType:   element,
		ElementID:     id,
		Property:      property,
		OriginalValue: original,
		Message:       message,
	}
}

func NewUnsupportedFeature(element, feature string, count int) Diagnostic {
	return Diagnostic{
		Type:          UnsupportedFeature,
		Severity:      Low,
		ElementType:   element,
		Property:      feature,
		OriginalValue: count,
		Message:       fmt.Sprintf("%s are not supported; skipped %d element(s)", feature, count),
	}
}

func NewValidationError(element string, index int, property string, err error) Diagnostic {
	return Diagnostic{
		Type:          ValidationError,
		Severity:      High,
		ElementType:   element,
		Property:      property,
		OriginalValue: index,
		Message:       fmt.Sprintf("%s %d: %v", element, index, err),
	}
}

// NewMissingData is a validation error for a required value that is absent.
func NewMissingData(element string, id *int, property string) Diagnostic {
	return Diagnostic{
		Type:        ValidationError,
		Severity:    High,
		ElementType: element,
		ElementID:   id,
		Property:    property,
		Message:     fmt.Sprintf("%s is missing required %s", element, property),
	}
}

// NewIDConflict records a source id that could not be kept.
func NewIDConflict(element string, original, generated int) Diagnostic {
	return Diagnostic{
		Type:          InformationLoss,
		Severity:      Medium,
		ElementType:   element,
		ElementID:     ID(generated),
		Property:      "id",
		OriginalValue: original,
		Message:       fmt.Sprintf("source id %d replaced by generated id %d", original, generated),
	}
}

// NewIDOverflow records a generated id that ran past the band of its
// category; consumers reading ids by band will misclassify it.
func NewIDOverflow(element string, id int, category string, bandEnd int) Diagnostic {
	return Diagnostic{
		Type:          ValidationError,
		Severity:      High,
		ElementType:   element,
		ElementID:     ID(id),
		Property:      "id",
		OriginalValue: id,
		Message:       fmt.Sprintf("%s id %d is outside the %s band (ids below %d)", element, id, category, bandEnd),
	}
}

func NewUnitConversion(element string, id *int, property string, original any, message string) Diagnostic {
	return Diagnostic{
		Type:          InformationLoss,
		Severity:      Low,
		ElementType:   element,
		ElementID:     id,
		Property:      property,
		OriginalValue: original,
		Message:       message,
	}
}

func NewMaterialPreservation(element string, id *int, property string, original any) Diagnostic {
	return Diagnostic{
		Type:          InformationLoss,
		Severity:      Medium,
		ElementType:   element,
		ElementID:     id,
		Property:      property,
		OriginalValue: original,
		Message:       fmt.Sprintf("%s %s kept in metadata only", element, property),
	}
}

// ============================================================
// Collector
// ============================================================

// Collector is the append-only list for one conversion run.
type Collector struct {
	items []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(d ...Diagnostic) {
	c.items = append(c.items, d...)
}

// All returns a copy of the collected diagnostics in insertion order.
func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) Len() int {
	return len(c.items)
}

func (c *Collector) HasHighSeverity() bool {
	for _, d := range c.items {
		if d.Severity == High {
			return true
		}
	}
	return false
}

func (c *Collector) HasInformationLoss() bool {
	for _, d := range c.items {
		if d.Type == InformationLoss {
			return true
		}
	}
	return false
}

// Summary is the machine-readable aggregate view.
type Summary struct {
	Total              int              `json:"total" yaml:"total"`
	ByType             map[Type]int     `json:"by_type" yaml:"by_type"`
	BySeverity         map[Severity]int `json:"by_severity" yaml:"by_severity"`
	ByElement          map[string]int   `json:"by_element" yaml:"by_element"`
	HasHighSeverity    bool             `json:"has_high_severity" yaml:"has_high_severity"`
	HasInformationLoss bool             `json:"has_information_loss" yaml:"has_information_loss"`
}

func (c *Collector) Summary() Summary {
	s := Summary{
		Total:              len(c.items),
		ByType:             make(map[Type]int),
		BySeverity:         make(map[Severity]int),
		ByElement:          make(map[string]int),
		HasHighSeverity:    c.HasHighSeverity(),
		HasInformationLoss: c.HasInformationLoss(),
	}
	for _, d := range c.items {
		s.ByType[d.Type]++
		s.BySeverity[d.Severity]++
		s.ByElement[d.ElementType]++
	}
	return s
}

// Export is the structured form handed to callers.
type Export struct {
	Summary     Summary      `json:"summary" yaml:"summary"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

func (c *Collector) Export() Export {
	return Export{Summary: c.Summary(), Diagnostics: c.All()}
}

// Text renders a short multi-line summary.
func (c *Collector) Text() string {
	if len(c.items) == 0 {
		return "no diagnostics"
	}

	s := c.Summary()
	var b strings.Builder
	fmt.Fprintf(&b, "%d diagnostic(s)\n", s.Total)
	for _, sev := range []Severity{High, Medium, Low} {
		if n := s.BySeverity[sev]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", sev, n)
		}
	}

	elements := make([]string, 0, len(s.ByElement))
	for e := range s.ByElement {
		elements = append(elements, e)
	}
	sort.Strings(elements)
	for _, e := range elements {
		fmt.Fprintf(&b, "  %s: %d\n", e, s.ByElement[e])
	}
	return strings.TrimRight(b.String(), "\n")
}
