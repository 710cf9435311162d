package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fml2scene/internal/converter/diagnostics"
	"fml2scene/internal/converter/mapper"

	"gopkg.in/yaml.v3"
)

// ============================================================
// File Storage
// ============================================================

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

func (f Format) ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// FileStorage lays out one directory per run:
//
//	<root>/<runID>/floor-<floorID>-design-<designID>-<n>.scenescript.txt
//	<root>/<runID>/metadata.json
//	<root>/<runID>/diagnostics.json
type FileStorage struct {
	root   string
	format Format
}

func NewFileStorage(root string, format Format) *FileStorage {
	if format == "" {
		format = FormatJSON
	}
	return &FileStorage{root: root, format: format}
}

func (s *FileStorage) RunDir(runID string) string {
	return filepath.Join(s.root, runID)
}

// ScriptPath names the script of the n-th design of a run. n keeps the name
// unique when source ids repeat or are missing.
func (s *FileStorage) ScriptPath(runID string, n int, d mapper.DesignOutput) string {
	name := fmt.Sprintf("floor-%d-design-%d-%d.scenescript.txt", d.FloorID, d.ID, n)
	return filepath.Join(s.RunDir(runID), name)
}

func (s *FileStorage) MetadataPath(runID string) string {
	return filepath.Join(s.RunDir(runID), "metadata"+s.format.ext())
}

func (s *FileStorage) DiagnosticsPath(runID string) string {
	return filepath.Join(s.RunDir(runID), "diagnostics"+s.format.ext())
}

func (s *FileStorage) EnsureDir(runID string) error {
	if err := os.MkdirAll(s.RunDir(runID), 0o755); err != nil {
		return fmt.Errorf("mkdir run dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(runID, target string, data []byte) error {
	if err := s.EnsureDir(runID); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// WriteResult writes every design script plus the metadata and
// diagnostics documents of a run, and returns the written paths.
func (s *FileStorage) WriteResult(runID string, res *mapper.Result) ([]string, error) {
	var written []string

	for n, d := range res.Designs {
		path := s.ScriptPath(runID, n, d)
		text := strings.Join(d.Lines, "\n")
		if text != "" {
			text += "\n"
		}
		if err := s.SaveFile(runID, path, []byte(text)); err != nil {
			return written, fmt.Errorf("write design %d: %w", d.ID, err)
		}
		written = append(written, path)
	}

	meta, err := s.encode(res.Metadata)
	if err != nil {
		return written, fmt.Errorf("encode metadata: %w", err)
	}
	if err := s.SaveFile(runID, s.MetadataPath(runID), meta); err != nil {
		return written, fmt.Errorf("write metadata: %w", err)
	}
	written = append(written, s.MetadataPath(runID))

	diags, err := s.encode(diagnostics.Export{Summary: res.Summary, Diagnostics: res.Diagnostics})
	if err != nil {
		return written, fmt.Errorf("encode diagnostics: %w", err)
	}
	if err := s.SaveFile(runID, s.DiagnosticsPath(runID), diags); err != nil {
		return written, fmt.Errorf("write diagnostics: %w", err)
	}
	written = append(written, s.DiagnosticsPath(runID))

	return written, nil
}

func (s *FileStorage) encode(v any) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
