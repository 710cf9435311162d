package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) *mapper.Result {
	t.Helper()

	wall := models.Wall{
		B:         models.Point{X: 400},
		AZ:        models.Elevation{H: 250},
		BZ:        models.Elevation{H: 280},
		Thickness: 10,
		Balance:   0.5,
	}
	p := &models.Project{Floors: []models.Floor{{Designs: []models.Design{
		{ID: 11, Walls: []models.Wall{wall}},
		{ID: 12},
	}}}}

	res, err := mapper.New(mapper.DefaultOptions()).Convert(p)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatJSON, true},
		{"JSON", FormatJSON, true},
		{"yml", FormatYAML, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if !tt.ok {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteResultJSON(t *testing.T) {
	root := t.TempDir()
	s := NewFileStorage(root, FormatJSON)

	written, err := s.WriteResult("run-1", sampleResult(t))
	require.NoError(t, err)
	assert.Len(t, written, 4)

	script, err := os.ReadFile(filepath.Join(root, "run-1", "floor-0-design-11-0.scenescript.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "make_wall, id=0,")

	res := sampleResult(t)
	empty, err := os.ReadFile(s.ScriptPath("run-1", 1, res.Designs[1]))
	require.NoError(t, err)
	assert.Empty(t, empty)

	var meta map[string]map[string]any
	data, err := os.ReadFile(s.MetadataPath("run-1"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "wall", meta["0"]["type"])
	assert.Contains(t, meta["0"], "height_variation")

	var diags struct {
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	data, err = os.ReadFile(s.DiagnosticsPath("run-1"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &diags))
	assert.Equal(t, 1, diags.Summary.Total)
}

func TestWriteResultYAML(t *testing.T) {
	s := NewFileStorage(t.TempDir(), FormatYAML)

	_, err := s.WriteResult("run-2", sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, ".yaml", filepath.Ext(s.MetadataPath("run-2")))

	data, err := os.ReadFile(s.MetadataPath("run-2"))
	require.NoError(t, err)

	var meta map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &meta))
	assert.Equal(t, "wall", meta["0"]["type"])
	assert.Equal(t, 0.1, meta["0"]["thickness"])
}

func TestWriteResultKeepsDesignsWithSameID(t *testing.T) {
	wall := func(x float64) models.Wall {
		return models.Wall{
			B:         models.Point{X: x},
			AZ:        models.Elevation{H: 250},
			BZ:        models.Elevation{H: 250},
			Thickness: 10,
			Balance:   0.5,
		}
	}
	p := &models.Project{Floors: []models.Floor{
		{Designs: []models.Design{{Walls: []models.Wall{wall(400)}}}},
		{Designs: []models.Design{{Walls: []models.Wall{wall(900)}}}},
	}}
	res, err := mapper.New(mapper.DefaultOptions()).Convert(p)
	require.NoError(t, err)

	s := NewFileStorage(t.TempDir(), FormatJSON)
	written, err := s.WriteResult("run-3", res)
	require.NoError(t, err)
	require.Len(t, written, 4)
	assert.NotEqual(t, written[0], written[1])

	first, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(first), "make_wall, id=0,")
	assert.Contains(t, string(first), "b_x=4.000000")

	second, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(second), "make_wall, id=1,")
	assert.Contains(t, string(second), "b_x=9.000000")
}
