package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNextStartsAtBand(t *testing.T) {
	a := New()

	assert.Equal(t, 0, a.Next(Wall))
	assert.Equal(t, 1000, a.Next(Door))
	assert.Equal(t, 2000, a.Next(Window))
	assert.Equal(t, 3000, a.Next(Item))
	assert.Equal(t, 4000, a.Next(Label))

	assert.Equal(t, 1, a.Next(Wall))
	assert.Equal(t, 1001, a.Next(Door))
}

func TestNextIsStrictlyIncreasingWithinBand(t *testing.T) {
	a := New()
	for _, c := range Categories {
		prev := -1
		for i := 0; i < 50; i++ {
			id := a.Next(c)
			assert.Greater(t, id, prev)
			assert.True(t, InRange(id, c), "id %d outside band of %s", id, c)
			prev = id
		}
	}
}

func TestPreserveOrGenerate(t *testing.T) {
	t.Run("absent source id generates", func(t *testing.T) {
		a := New()
		got := a.PreserveOrGenerate(nil, Wall)
		assert.Equal(t, Allocation{ID: 0}, got)
	})

	t.Run("negative source id generates", func(t *testing.T) {
		a := New()
		got := a.PreserveOrGenerate(intPtr(-1), Item)
		assert.Equal(t, 3000, got.ID)
		assert.False(t, got.Preserved)
		assert.False(t, got.Rejected)
	})

	t.Run("in-band source id is kept", func(t *testing.T) {
		a := New()
		got := a.PreserveOrGenerate(intPtr(3010), Item)
		assert.Equal(t, 3010, got.ID)
		assert.True(t, got.Preserved)
		assert.True(t, a.IsUsed(3010))
	})

	t.Run("generated ids skip preserved ones", func(t *testing.T) {
		a := New()
		require.True(t, a.PreserveOrGenerate(intPtr(1), Wall).Preserved)

		assert.Equal(t, 0, a.Next(Wall))
		assert.Equal(t, 2, a.Next(Wall))
		assert.Equal(t, 3, a.RangeOf(Wall))
	})

	t.Run("duplicate source id is rejected", func(t *testing.T) {
		a := New()
		a.PreserveOrGenerate(intPtr(0), Wall)
		got := a.PreserveOrGenerate(intPtr(0), Wall)
		assert.True(t, got.Rejected)
		assert.Equal(t, 0, got.SourceID)
		assert.Equal(t, 1, got.ID)
	})

	t.Run("out of band source id is rejected", func(t *testing.T) {
		a := New()
		got := a.PreserveOrGenerate(intPtr(5), Item)
		assert.True(t, got.Rejected)
		assert.Equal(t, 3000, got.ID)
	})
}

func TestPreserveOrGeneratePanicsForOpenings(t *testing.T) {
	a := New()
	assert.Panics(t, func() { a.PreserveOrGenerate(intPtr(1000), Door) })
}

func TestUnknownCategoryPanics(t *testing.T) {
	a := New()
	assert.Panics(t, func() { a.Next(Category("area")) })
	assert.Panics(t, func() { a.RangeOf(Category("area")) })
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		id   int
		want Category
		ok   bool
	}{
		{-1, "", false},
		{0, Wall, true},
		{999, Wall, true},
		{1000, Door, true},
		{1999, Door, true},
		{2000, Window, true},
		{3999, Item, true},
		{4000, Label, true},
		{100000, Label, true},
	}
	for _, tt := range tests {
		got, ok := CategoryOf(tt.id)
		assert.Equal(t, tt.want, got, "id %d", tt.id)
		assert.Equal(t, tt.ok, ok, "id %d", tt.id)
	}
}

func TestSnapshot(t *testing.T) {
	a := New()
	a.Next(Item)
	a.Next(Item)

	snap := a.Snapshot()
	assert.Equal(t, 3002, snap[Item])
	assert.Equal(t, 0, snap[Wall])
	assert.Len(t, snap, len(Categories))
}

func TestBandEnd(t *testing.T) {
	tests := []struct {
		c    Category
		end  int
		open bool
	}{
		{Wall, DoorStart, false},
		{Door, WindowStart, false},
		{Window, ItemStart, false},
		{Item, LabelStart, false},
		{Label, 0, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			end, ok := BandEnd(tt.c)
			assert.Equal(t, !tt.open, ok)
			assert.Equal(t, tt.end, end)
		})
	}

	assert.Panics(t, func() { BandEnd("stair") })
}

func TestNextRunsPastBand(t *testing.T) {
	a := New()
	var last int
	for i := 0; i <= 1000; i++ {
		last = a.Next(Wall)
	}
	assert.Equal(t, 1000, last)
	assert.False(t, InRange(last, Wall))
	assert.Equal(t, 1001, a.Next(Door), "the door counter skips the id the wall took")
}
