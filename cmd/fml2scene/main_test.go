package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const project = `{
  "id": 1,
  "floors": [{"id": 1, "designs": [{"id": 9, "walls": [{
    "a": {"x": 0, "y": 0}, "b": {"x": 412, "y": 0},
    "az": {"z": 0, "h": 250}, "bz": {"z": 0, "h": 250},
    "thickness": 10, "balance": 0.5,
    "openings": [{"type": "window", "width": 100, "z": 90, "z_height": 120, "t": 0.5}]
  }], "labels": [{"x": 0, "y": 0, "text": "Hall"}]}]}]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertToStdout(t *testing.T) {
	in := writeFile(t, "project.json", project)

	out, err := execute(t, "convert", "-i", in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "b_x=4.120000")
	assert.True(t, strings.HasPrefix(lines[1], "make_window, id=2000,"))
}

func TestConvertFlags(t *testing.T) {
	in := writeFile(t, "project.json", project)

	out, err := execute(t, "convert", "-i", in, "--snap", "0.25", "--label-comments")
	require.NoError(t, err)
	assert.Contains(t, out, "b_x=4.000000")
	assert.Contains(t, out, `# label 4000: "Hall"`)
}

func TestConvertWithConfigFile(t *testing.T) {
	in := writeFile(t, "project.json", project)
	cfg := writeFile(t, "converter.yaml", "snap_value: 0.5\n")

	out, err := execute(t, "convert", "-c", cfg, "-i", in)
	require.NoError(t, err)
	assert.Contains(t, out, "b_x=4.000000")
}

func TestConvertToDirectoryThenInspect(t *testing.T) {
	in := writeFile(t, "project.json", project)
	dir := t.TempDir()

	out, err := execute(t, "convert", "-i", in, "-o", dir, "--format", "yaml")
	require.NoError(t, err)

	paths := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, paths, 3)
	assert.True(t, strings.HasSuffix(paths[0], "floor-1-design-9-0.scenescript.txt"))
	assert.True(t, strings.HasSuffix(paths[1], "metadata.yaml"))

	out, err = execute(t, "inspect", paths[0])
	require.NoError(t, err)
	assert.Contains(t, out, "make_wall")
	assert.Contains(t, out, "make_window")
	assert.Regexp(t, `total\s+2`, out)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{"missing input flag", func(t *testing.T) []string { return []string{"convert"} }},
		{"missing file", func(t *testing.T) []string { return []string{"convert", "-i", filepath.Join(t.TempDir(), "x.json")} }},
		{"bad format", func(t *testing.T) []string {
			return []string{"convert", "-i", writeFile(t, "p.json", project), "--format", "xml"}
		}},
		{"invalid project", func(t *testing.T) []string {
			return []string{"convert", "-i", writeFile(t, "p.json", `{"floors": []}`)}
		}},
		{"negative snap", func(t *testing.T) []string {
			return []string{"convert", "-i", writeFile(t, "p.json", project), "--snap", "-1"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args(t)...)
			assert.Error(t, err)
		})
	}
}
