package ids

import (
	"fmt"
)

// ============================================================
// Categories & bands
// ============================================================

type Category string

const (
	Wall   Category = "wall"
	Door   Category = "door"
	Window Category = "window"
	Item   Category = "item"
	Label  Category = "label"
)

// Categories in band order.
var Categories = []Category{Wall, Door, Window, Item, Label}

// Start values are part of the output contract.
const (
	WallStart   = 0
	DoorStart   = 1000
	WindowStart = 2000
	ItemStart   = 3000
	LabelStart  = 4000
)

func start(c Category) int {
	switch c {
	case Wall:
		return WallStart
	case Door:
		return DoorStart
	case Window:
		return WindowStart
	case Item:
		return ItemStart
	case Label:
		return LabelStart
	}
	panic(fmt.Sprintf("ids: unknown category %q", c))
}

// BandEnd returns the first id past the band of c. The label band is open
// ended and reports false.
func BandEnd(c Category) (int, bool) {
	for i, cat := range Categories {
		if cat != c {
			continue
		}
		if i+1 == len(Categories) {
			return 0, false
		}
		return start(Categories[i+1]), true
	}
	panic(fmt.Sprintf("ids: unknown category %q", c))
}

// CategoryOf returns the band an id falls into. Negative ids have none.
func CategoryOf(id int) (Category, bool) {
	switch {
	case id < WallStart:
		return "", false
	case id < DoorStart:
		return Wall, true
	case id < WindowStart:
		return Door, true
	case id < ItemStart:
		return Window, true
	case id < LabelStart:
		return Item, true
	}
	return Label, true
}

// InRange reports whether id belongs to the band of c.
func InRange(id int, c Category) bool {
	got, ok := CategoryOf(id)
	return ok && got == c
}

// ============================================================
// Allocator
// ============================================================

// Allocator hands out run-unique ids. One allocator per conversion run;
// it is not safe for concurrent use.
type Allocator struct {
	counters map[Category]int
	used     map[int]bool
}

func New() *Allocator {
	a := &Allocator{
		counters: make(map[Category]int, len(Categories)),
		used:     make(map[int]bool),
	}
	for _, c := range Categories {
		a.counters[c] = start(c)
	}
	return a
}

// Next returns the current counter of c and advances it, skipping ids
// already taken by preserved source ids.
func (a *Allocator) Next(c Category) int {
	id, ok := a.counters[c]
	if !ok {
		panic(fmt.Sprintf("ids: unknown category %q", c))
	}
	for a.used[id] {
		id++
	}
	a.used[id] = true
	a.counters[c] = id + 1
	return id
}

// Allocation is the outcome of PreserveOrGenerate.
type Allocation struct {
	ID        int
	Preserved bool
	// Rejected is set when a source id was given but could not be kept
	// (already used, or outside the band of the category).
	Rejected bool
	SourceID int
}

// PreserveOrGenerate keeps a non-negative source id when it is free and in
// the band of c, otherwise it falls through to Next.
func (a *Allocator) PreserveOrGenerate(sourceID *int, c Category) Allocation {
	if c != Wall && c != Item {
		panic(fmt.Sprintf("ids: category %q does not carry source ids", c))
	}
	if sourceID == nil || *sourceID < 0 {
		return Allocation{ID: a.Next(c)}
	}

	src := *sourceID
	if a.used[src] || !InRange(src, c) {
		return Allocation{ID: a.Next(c), Rejected: true, SourceID: src}
	}

	a.used[src] = true
	return Allocation{ID: src, Preserved: true, SourceID: src}
}

// RangeOf exposes the next value the counter of c would hand out.
func (a *Allocator) RangeOf(c Category) int {
	id, ok := a.counters[c]
	if !ok {
		panic(fmt.Sprintf("ids: unknown category %q", c))
	}
	return id
}

func (a *Allocator) IsUsed(id int) bool {
	return a.used[id]
}

// Snapshot returns RangeOf for every category.
func (a *Allocator) Snapshot() map[Category]int {
	out := make(map[Category]int, len(a.counters))
	for c, v := range a.counters {
		out[c] = v
	}
	return out
}
