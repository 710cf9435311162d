package metadata

import (
	"encoding/json"
	"strconv"
)

// ============================================================
// Entry
// ============================================================

// Entry is stored under the allocated id. It serializes flat:
// {"type": kind, ...attributes}.
type Entry struct {
	Type       Kind
	Attributes map[string]any
}

func (e Entry) flatten() map[string]any {
	out := make(map[string]any, len(e.Attributes)+1)
	for k, v := range e.Attributes {
		out[k] = v
	}
	out["type"] = string(e.Type)
	return out
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.flatten())
}

func (e Entry) MarshalYAML() (any, error) {
	return e.flatten(), nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, _ := raw["type"].(string)
	delete(raw, "type")
	e.Type = Kind(kind)
	e.Attributes = raw
	return nil
}

// ============================================================
// Sink
// ============================================================

// Sink maps allocated ids to attribute bags for one conversion run.
type Sink struct {
	entries map[string]*Entry
}

func NewSink() *Sink {
	return &Sink{entries: make(map[string]*Entry)}
}

func Key(id int) string {
	return strconv.Itoa(id)
}

// Add merges attrs into the entry for id, creating it tagged with kind.
// Nested maps merge key by key; other values under the same name are replaced.
func (s *Sink) Add(id int, kind Kind, attrs map[string]any) {
	key := Key(id)
	entry, ok := s.entries[key]
	if !ok {
		entry = &Entry{Type: kind, Attributes: make(map[string]any, len(attrs))}
		s.entries[key] = entry
	}
	merge(entry.Attributes, attrs)
}

// Record adds the bag of a when it is not empty and reports whether it did.
func (s *Sink) Record(id int, a Attributes) bool {
	bag := a.Bag()
	if len(bag) == 0 {
		return false
	}
	s.Add(id, a.Kind(), bag)
	return true
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
			cp := make(map[string]any, len(sub))
			merge(cp, sub)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

func (s *Sink) Get(id int) (Entry, bool) {
	e, ok := s.entries[Key(id)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (s *Sink) Has(id int) bool {
	_, ok := s.entries[Key(id)]
	return ok
}

func (s *Sink) Len() int {
	return len(s.entries)
}

// Snapshot returns a copy of every entry keyed by id.
func (s *Sink) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for k, e := range s.entries {
		attrs := make(map[string]any, len(e.Attributes))
		merge(attrs, e.Attributes)
		out[k] = Entry{Type: e.Type, Attributes: attrs}
	}
	return out
}
